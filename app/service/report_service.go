package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strings"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/repository"
	"safegrowth-backend/cache"

	"github.com/sirupsen/logrus"
)

// MediaStore adalah penyimpanan file gambar laporan.
type MediaStore interface {
	// Save memvalidasi lalu menyimpan file, mengembalikan path relatif.
	Save(fh *multipart.FileHeader) (string, error)
	Delete(relPath string) error
	Exists(relPath string) bool
}

// CreateReportInput adalah isi form laporan baru.
type CreateReportInput struct {
	AnonymousID  string
	Latitude     float64
	Longitude    float64
	LocationName string
	Title        string
	Description  string
	Category     string
	Image        *multipart.FileHeader
}

// CreatedReport adalah hasil CreateReport.
type CreatedReport struct {
	ID     uint
	Status string
	Image  *string
}

// ReportService berisi alur hidup laporan: list, buat, ubah status, hapus.
type ReportService interface {
	List(ctx context.Context, filter model.ReportFilter) ([]model.ReportView, error)
	Create(ctx context.Context, in CreateReportInput) (*CreatedReport, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*model.ReportStats, error)
	Activities(ctx context.Context, id uint) ([]model.ReportActivity, error)
}

type reportService struct {
	reportRepo     repository.ReportRepository
	validationRepo repository.ValidationRepository
	activityRepo   repository.ActivityRepository
	identity       IdentityService
	media          MediaStore
	cache          cache.ReportCache
	baseURL        string
	log            *logrus.Logger
}

// NewReportService menghubungkan Service dengan Repository, media store dan cache.
func NewReportService(
	reportRepo repository.ReportRepository,
	validationRepo repository.ValidationRepository,
	activityRepo repository.ActivityRepository,
	identity IdentityService,
	media MediaStore,
	reportCache cache.ReportCache,
	baseURL string,
	log *logrus.Logger,
) ReportService {
	return &reportService{
		reportRepo:     reportRepo,
		validationRepo: validationRepo,
		activityRepo:   activityRepo,
		identity:       identity,
		media:          media,
		cache:          reportCache,
		baseURL:        strings.TrimRight(baseURL, "/"),
		log:            log,
	}
}

// ==========================================
// LIST
// ==========================================

func (s *reportService) List(ctx context.Context, filter model.ReportFilter) ([]model.ReportView, error) {
	if filter.Status != "" && !model.IsValidStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}
	if filter.Category != "" && !model.IsValidCategory(filter.Category) {
		return nil, ErrInvalidCategory
	}

	// generasi dibaca sebelum query; jika ada mutasi di tengah jalan,
	// hasil query ini tersimpan di generasi lama dan tidak dibaca lagi.
	gen, err := s.cache.Generation(ctx)
	useCache := err == nil
	if err != nil {
		s.log.WithError(err).Warn("report cache generation read failed")
	}
	if useCache {
		if views, ok, err := s.cache.Get(ctx, gen, filter); err != nil {
			s.log.WithError(err).Warn("report cache read failed")
		} else if ok {
			return views, nil
		}
	}

	reports, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}

	ids := make([]uint, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.ID)
	}

	// satu query GROUP BY untuk semua laporan
	counts, err := s.validationRepo.CountByReportIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count validations: %w", err)
	}
	summaries := make(map[uint]model.ValidationSummary, len(reports))
	for _, c := range counts {
		summary, ok := summaries[c.ReportID]
		if !ok {
			summary = model.NewValidationSummary()
			summaries[c.ReportID] = summary
		}
		summary.Add(c.TagType, c.Count)
	}

	views := make([]model.ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, model.NewReportView(r, s.imageURL(r.ImageURL), summaries[r.ID]))
	}

	if useCache {
		if err := s.cache.Set(ctx, gen, filter, views); err != nil {
			s.log.WithError(err).Warn("report cache write failed")
		}
	}
	return views, nil
}

// imageURL mengembalikan URL absolut, atau nil jika laporan tanpa gambar
// atau file-nya sudah hilang dari disk.
func (s *reportService) imageURL(relPath *string) *string {
	if relPath == nil || *relPath == "" {
		return nil
	}
	if !s.media.Exists(*relPath) {
		return nil
	}
	url := s.baseURL + "/" + strings.TrimLeft(strings.ReplaceAll(*relPath, "\\", "/"), "/")
	return &url
}

// ==========================================
// CREATE
// ==========================================

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Create menyimpan laporan baru berstatus pending. Gambar divalidasi dan
// disimpan sebelum baris apa pun (user maupun laporan) ditulis.
func (s *reportService) Create(ctx context.Context, in CreateReportInput) (*CreatedReport, error) {
	if !model.IsValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}
	if !validCoordinates(in.Latitude, in.Longitude) {
		return nil, ErrInvalidCoordinates
	}

	var imagePath *string
	if in.Image != nil {
		p, err := s.media.Save(in.Image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		imagePath = &p
	}

	userID, err := s.identity.ResolveOrCreateUser(ctx, in.AnonymousID)
	if err != nil {
		s.discardImage(imagePath)
		return nil, err
	}

	report := &model.Report{
		UserID:       userID,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		LocationName: in.LocationName,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		ImageURL:     imagePath,
		Status:       model.StatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.discardImage(imagePath)
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.invalidateCache(ctx)
	s.recordActivity(ctx, report.ID, model.ActivityCreated, report.Category, in.AnonymousID)

	return &CreatedReport{
		ID:     report.ID,
		Status: report.Status,
		Image:  s.imageURL(imagePath),
	}, nil
}

func (s *reportService) discardImage(relPath *string) {
	if relPath == nil {
		return
	}
	if err := s.media.Delete(*relPath); err != nil {
		s.log.WithError(err).WithField("image", *relPath).Warn("failed to remove orphan image")
	}
}

// ==========================================
// UPDATE STATUS & DELETE (admin)
// ==========================================

func (s *reportService) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !model.IsValidStatus(status) {
		return ErrInvalidStatus
	}

	n, err := s.reportRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n == 0 {
		// id tidak ada tetap dianggap sukses
		s.log.WithField("report_id", id).Info("status update matched no report")
		return nil
	}

	s.invalidateCache(ctx)
	s.recordActivity(ctx, id, model.ActivityStatusChanged, status, "admin")
	return nil
}

// Delete menghapus file gambar, lalu validasi dan laporannya dalam satu transaksi.
func (s *reportService) Delete(ctx context.Context, id uint) error {
	report, err := s.reportRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.WithField("report_id", id).Info("delete matched no report")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find report: %w", err)
	}

	if report.ImageURL != nil && *report.ImageURL != "" {
		if err := s.media.Delete(*report.ImageURL); err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
	}

	if _, err := s.reportRepo.DeleteWithValidations(ctx, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	s.invalidateCache(ctx)
	s.recordActivity(ctx, id, model.ActivityDeleted, report.Title, "admin")
	return nil
}

// ==========================================
// STATS & ACTIVITY
// ==========================================

func (s *reportService) Stats(ctx context.Context) (*model.ReportStats, error) {
	stats := model.NewReportStats()

	byStatus, err := s.reportRepo.CountBy(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	for k, v := range byStatus {
		stats.ByStatus[k] = v
		stats.Total += v
	}

	byCategory, err := s.reportRepo.CountBy(ctx, "category")
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	for k, v := range byCategory {
		stats.ByCategory[k] = v
	}

	stats.TotalValidations, err = s.validationRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count validations: %w", err)
	}

	if s.activityRepo.Enabled() {
		activity, err := s.activityRepo.CountByAction(ctx)
		if err != nil {
			s.log.WithError(err).Warn("activity aggregation failed")
		} else {
			stats.Activity = activity
		}
	}
	return stats, nil
}

func (s *reportService) Activities(ctx context.Context, id uint) ([]model.ReportActivity, error) {
	return s.activityRepo.FindByReportID(ctx, id)
}

func (s *reportService) invalidateCache(ctx context.Context) {
	invalidateCache(ctx, s.cache, s.log)
}

func (s *reportService) recordActivity(ctx context.Context, reportID uint, action, detail, actor string) {
	recordActivity(ctx, s.activityRepo, s.log, reportID, action, detail, actor)
}
