package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/repository"
)

// GuestAnonymousID dipakai jika perangkat tidak mengirim anonymous_id.
const GuestAnonymousID = "guest"

// IdentityService memetakan anonymous_id perangkat ke user id internal.
type IdentityService interface {
	ResolveOrCreateUser(ctx context.Context, anonymousID string) (uint, error)
}

type identityService struct {
	userRepo repository.UserRepository
}

// NewIdentityService membuat IdentityService.
func NewIdentityService(userRepo repository.UserRepository) IdentityService {
	return &identityService{userRepo: userRepo}
}

// ResolveOrCreateUser mencari user berdasarkan anonymous_id, atau membuatnya (role user).
// Insert memakai ON CONFLICT DO NOTHING di atas unique index anonymous_id, jadi dua
// submit pertama yang bersamaan dari perangkat yang sama berakhir di baris yang sama.
func (s *identityService) ResolveOrCreateUser(ctx context.Context, anonymousID string) (uint, error) {
	anonymousID = strings.TrimSpace(anonymousID)
	if anonymousID == "" {
		anonymousID = GuestAnonymousID
	}

	user, err := s.userRepo.FindByAnonymousID(ctx, anonymousID)
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("find user: %w", err)
	}

	newUser := &model.User{Role: model.RoleUser, AnonymousID: &anonymousID}
	created, err := s.userRepo.CreateIfAbsent(ctx, newUser)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	if created {
		return newUser.ID, nil
	}

	// kalah balapan dengan request lain: baca ulang baris pemenang
	user, err = s.userRepo.FindByAnonymousID(ctx, anonymousID)
	if err != nil {
		return 0, fmt.Errorf("find user after conflict: %w", err)
	}
	return user.ID, nil
}
