package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/service"
	"safegrowth-backend/storage"
	"safegrowth-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReportHandler adalah pengelola request untuk fitur laporan.
type ReportHandler struct {
	reportService service.ReportService
	maxBody       int64
	log           *logrus.Logger
}

// NewReportHandler menyambungkan ReportService ke handler. maxBody membatasi
// ukuran body POST /reports; 0 berarti tanpa batas.
func NewReportHandler(reportService service.ReportService, maxBody int64, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, maxBody: maxBody, log: log}
}

// SetupReportRoutes mendaftarkan endpoint /reports. guard (misal AdminOnly)
// dipasang di endpoint admin: ubah status, hapus, statistik, aktivitas.
func (h *ReportHandler) SetupReportRoutes(api *gin.RouterGroup, guard ...gin.HandlerFunc) {
	reports := api.Group("/reports")
	{
		// publik: peta & form laporan
		reports.GET("", h.List)
		reports.POST("", h.Create)

		// admin
		reports.GET("/stats", chain(guard, h.Stats)...)
		reports.PUT("/:id/status", chain(guard, h.UpdateStatus)...)
		reports.DELETE("/:id", chain(guard, h.Delete)...)
		reports.GET("/:id/activities", chain(guard, h.Activities)...)
	}
}

// chain menyalin guard supaya slice tidak saling berbagi backing array.
func chain(guard []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guard)+1)
	out = append(out, guard...)
	return append(out, handler)
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		ctx.JSON(http.StatusBadRequest, utils.BuildError("ID laporan tidak valid"))
		return 0, false
	}
	return uint(id), true
}

// ==================================================================
// LIST
// ==================================================================

type listReportsQuery struct {
	Status   string `form:"status" binding:"omitempty,report_status"`
	Category string `form:"category" binding:"omitempty,report_category"`
}

// List mengembalikan semua laporan, terbaru lebih dulu.
func (h *ReportHandler) List(ctx *gin.Context) {
	var query listReportsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildError("Filter laporan tidak valid"))
		return
	}

	views, err := h.reportService.List(ctx.Request.Context(), model.ReportFilter{
		Status:   query.Status,
		Category: query.Category,
	})
	if errors.Is(err, service.ErrInvalidStatus) || errors.Is(err, service.ErrInvalidCategory) {
		ctx.JSON(http.StatusBadRequest, utils.BuildError("Filter laporan tidak valid"))
		return
	}
	if err != nil {
		h.log.WithError(err).Error("list reports failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal mengambil data laporan"))
		return
	}
	ctx.JSON(http.StatusOK, views)
}

// ==================================================================
// CREATE
// ==================================================================

// createReportForm mengikuti nama field form SPA (multipart/form-data).
type createReportForm struct {
	Lat          *float64 `form:"lat" binding:"required"`
	Lng          *float64 `form:"lng" binding:"required"`
	Title        string   `form:"title"`
	Desc         string   `form:"desc"`
	Type         string   `form:"type" binding:"required"`
	LocationName string   `form:"locationName"`
	AnonymousID  string   `form:"anonymous_id"`
}

// Create menerima laporan baru beserta gambar opsional (field "image").
func (h *ReportHandler) Create(ctx *gin.Context) {
	// batas dipasang sebelum multipart di-parse ke temp file
	if h.maxBody > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, h.maxBody)
	}

	var form createReportForm
	if err := ctx.ShouldBind(&form); err != nil {
		if bodyTooLarge(err) {
			ctx.JSON(http.StatusBadRequest, utils.BuildError(msgImageTooLarge))
			return
		}
		ctx.JSON(http.StatusBadRequest, utils.BuildError("Data laporan tidak lengkap"))
		return
	}

	image, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		image, err = nil, nil
	}
	if bodyTooLarge(err) {
		ctx.JSON(http.StatusBadRequest, utils.BuildError(msgImageTooLarge))
		return
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildError("Gambar tidak dapat dibaca"))
		return
	}

	created, err := h.reportService.Create(ctx.Request.Context(), service.CreateReportInput{
		AnonymousID:  form.AnonymousID,
		Latitude:     *form.Lat,
		Longitude:    *form.Lng,
		LocationName: form.LocationName,
		Title:        form.Title,
		Description:  form.Desc,
		Category:     form.Type,
		Image:        image,
	})
	if err != nil {
		if status, msg, ok := createErrorResponse(err); ok {
			ctx.JSON(status, utils.BuildError(msg))
			return
		}
		h.log.WithError(err).Error("create report failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal menyimpan laporan"))
		return
	}

	ctx.JSON(http.StatusCreated, utils.CreateReportResponse{
		Message:  "Laporan berhasil disimpan",
		ReportID: created.ID,
		Status:   created.Status,
	})
}

const msgImageTooLarge = "Ukuran gambar maksimal 5MB"

func bodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// createErrorResponse memetakan error validasi ke 400.
func createErrorResponse(err error) (int, string, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidCategory):
		return http.StatusBadRequest, "Kategori tidak valid", true
	case errors.Is(err, service.ErrInvalidCoordinates):
		return http.StatusBadRequest, "Koordinat tidak valid", true
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusBadRequest, msgImageTooLarge, true
	case errors.Is(err, storage.ErrUnsupportedType):
		return http.StatusBadRequest, "Hanya file gambar yang diperbolehkan (jpeg, jpg, png, gif)", true
	}
	return 0, "", false
}

// ==================================================================
// ADMIN: UPDATE STATUS, DELETE, STATS, ACTIVITIES
// ==================================================================

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,report_status"`
}

// UpdateStatus mengubah status laporan (pending / verified / rejected).
func (h *ReportHandler) UpdateStatus(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var input updateStatusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildError("Status tidak valid"))
		return
	}

	err := h.reportService.UpdateStatus(ctx.Request.Context(), id, input.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		ctx.JSON(http.StatusBadRequest, utils.BuildError("Status tidak valid"))
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("report_id", id).Error("update status failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal update status"))
		return
	}

	ctx.JSON(http.StatusOK, utils.BuildMessage(fmt.Sprintf("Laporan berhasil diubah menjadi %s", input.Status)))
}

// Delete menghapus laporan beserta gambar dan validasinya.
func (h *ReportHandler) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := h.reportService.Delete(ctx.Request.Context(), id); err != nil {
		h.log.WithError(err).WithField("report_id", id).Error("delete report failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal menghapus laporan"))
		return
	}
	ctx.JSON(http.StatusOK, utils.BuildMessage("Laporan dihapus permanen"))
}

// Stats mengembalikan ringkasan untuk dashboard admin.
func (h *ReportHandler) Stats(ctx *gin.Context) {
	stats, err := h.reportService.Stats(ctx.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("report stats failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal mengambil statistik laporan"))
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// Activities mengembalikan jejak aktivitas 1 laporan (kosong jika MongoDB tidak aktif).
func (h *ReportHandler) Activities(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	acts, err := h.reportService.Activities(ctx.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("report_id", id).Error("list activities failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal mengambil aktivitas laporan"))
		return
	}
	ctx.JSON(http.StatusOK, acts)
}
