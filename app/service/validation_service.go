package service

import (
	"context"
	"errors"
	"fmt"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/repository"
	"safegrowth-backend/cache"

	"github.com/sirupsen/logrus"
)

// ValidationService menangani vote komunitas atas laporan.
type ValidationService interface {
	Add(ctx context.Context, reportID uint, tagType, userIdentifier string) error
}

type validationService struct {
	validationRepo repository.ValidationRepository
	activityRepo   repository.ActivityRepository
	cache          cache.ReportCache
	log            *logrus.Logger
}

// NewValidationService menghubungkan Service dengan Repository.
func NewValidationService(
	validationRepo repository.ValidationRepository,
	activityRepo repository.ActivityRepository,
	reportCache cache.ReportCache,
	log *logrus.Logger,
) ValidationService {
	return &validationService{
		validationRepo: validationRepo,
		activityRepo:   activityRepo,
		cache:          reportCache,
		log:            log,
	}
}

// Add menyimpan 1 vote. Triple (laporan, tag, perangkat) yang sama ditolak
// dengan ErrDuplicateVote, termasuk jika insert bersamaan kena unique index.
// tagType tidak dibatasi ke daftar tag kanonik.
func (s *validationService) Add(ctx context.Context, reportID uint, tagType, userIdentifier string) error {
	exists, err := s.validationRepo.Exists(ctx, reportID, tagType, userIdentifier)
	if err != nil {
		return fmt.Errorf("check validation: %w", err)
	}
	if exists {
		return ErrDuplicateVote
	}

	err = s.validationRepo.Create(ctx, &model.Validation{
		ReportID:       reportID,
		TagType:        tagType,
		UserIdentifier: userIdentifier,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrDuplicateVote
	}
	if err != nil {
		return fmt.Errorf("create validation: %w", err)
	}

	invalidateCache(ctx, s.cache, s.log)
	recordActivity(ctx, s.activityRepo, s.log, reportID, model.ActivityValidated, tagType, userIdentifier)
	return nil
}
