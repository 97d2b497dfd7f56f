package repository

import (
	"context"
	"errors"

	"safegrowth-backend/app/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate dikembalikan jika insert melanggar unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// pgUniqueViolation adalah SQLSTATE unique_violation di PostgreSQL.
const pgUniqueViolation = "23505"

// TagCount adalah hasil agregasi jumlah vote per (report_id, tag_type).
type TagCount struct {
	ReportID uint
	TagType  string
	Count    int64
}

// ValidationRepository menangani tabel validations.
type ValidationRepository interface {
	// Exists mengecek apakah triple (reportID, tagType, userIdentifier) sudah ada.
	Exists(ctx context.Context, reportID uint, tagType, userIdentifier string) (bool, error)

	// Create menyimpan vote baru. ErrDuplicate jika triple sudah ada.
	Create(ctx context.Context, v *model.Validation) error

	// CountByReportIDs menghitung vote per laporan & tag (GROUP BY report_id, tag_type).
	CountByReportIDs(ctx context.Context, reportIDs []uint) ([]TagCount, error)

	// CountAll menghitung seluruh vote.
	CountAll(ctx context.Context) (int64, error)
}

type validationRepository struct {
	db *gorm.DB
}

// NewValidationRepository membuat instance baru validationRepository.
func NewValidationRepository(db *gorm.DB) ValidationRepository {
	return &validationRepository{db: db}
}

func (r *validationRepository) Exists(ctx context.Context, reportID uint, tagType, userIdentifier string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Validation{}).
		Where("report_id = ? AND tag_type = ? AND user_identifier = ?", reportID, tagType, userIdentifier).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *validationRepository) Create(ctx context.Context, v *model.Validation) error {
	err := r.db.WithContext(ctx).Create(v).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *validationRepository) CountByReportIDs(ctx context.Context, reportIDs []uint) ([]TagCount, error) {
	counts := []TagCount{}
	if len(reportIDs) == 0 {
		return counts, nil
	}
	err := r.db.WithContext(ctx).
		Model(&model.Validation{}).
		Select("report_id, tag_type, COUNT(*) AS count").
		Where("report_id IN ?", reportIDs).
		Group("report_id, tag_type").
		Scan(&counts).Error
	return counts, err
}

func (r *validationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Validation{}).Count(&count).Error
	return count, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
