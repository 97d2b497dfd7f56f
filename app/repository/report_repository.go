package repository

import (
	"context"

	"safegrowth-backend/app/model"

	"gorm.io/gorm"
)

// ReportRepository menangani tabel reports di PostgreSQL.
type ReportRepository interface {
	// FindAll mengambil laporan terbaru lebih dulu, dengan filter opsional.
	FindAll(ctx context.Context, filter model.ReportFilter) ([]model.Report, error)

	// FindByID mengambil 1 laporan; ErrNotFound jika tidak ada.
	FindByID(ctx context.Context, id uint) (*model.Report, error)

	// Create menyimpan laporan baru dan mengisi ID-nya.
	Create(ctx context.Context, report *model.Report) error

	// UpdateStatus hanya mengubah kolom status. Mengembalikan jumlah baris terdampak.
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)

	// DeleteWithValidations menghapus validasi milik laporan lalu laporannya,
	// dalam satu transaksi. Mengembalikan jumlah laporan yang terhapus.
	DeleteWithValidations(ctx context.Context, id uint) (int64, error)

	// CountBy menghitung laporan per nilai kolom (status / category).
	CountBy(ctx context.Context, column string) (map[string]int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository membuat instance baru reportRepository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) FindAll(ctx context.Context, filter model.ReportFilter) ([]model.Report, error) {
	q := r.db.WithContext(ctx).Model(&model.Report{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	reports := []model.Report{}
	err := q.Order("created_at DESC").Order("id DESC").Find(&reports).Error
	return reports, err
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &report, nil
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *reportRepository) DeleteWithValidations(ctx context.Context, id uint) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// validations punya FK ke reports, jadi dihapus lebih dulu
		if err := tx.Where("report_id = ?", id).Delete(&model.Validation{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Report{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

// Kolom yang boleh dipakai CountBy; nama kolom tidak pernah berasal dari input user.
var countableColumns = map[string]bool{
	"status":   true,
	"category": true,
}

func (r *reportRepository) CountBy(ctx context.Context, column string) (map[string]int64, error) {
	if !countableColumns[column] {
		return nil, gorm.ErrInvalidField
	}

	var rows []struct {
		Value string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Report{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Value] = row.Count
	}
	return out, nil
}
