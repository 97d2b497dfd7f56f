package routes

import (
	"errors"
	"net/http"

	"safegrowth-backend/app/service"
	"safegrowth-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ValidationHandler menangani vote komunitas.
type ValidationHandler struct {
	validationService service.ValidationService
	log               *logrus.Logger
}

// NewValidationHandler menyambungkan ValidationService ke handler.
func NewValidationHandler(validationService service.ValidationService, log *logrus.Logger) *ValidationHandler {
	return &ValidationHandler{validationService: validationService, log: log}
}

// SetupValidationRoutes mendaftarkan POST /validations.
func (h *ValidationHandler) SetupValidationRoutes(api *gin.RouterGroup) {
	api.POST("/validations", h.Add)
}

type addValidationRequest struct {
	ReportID       uint   `json:"report_id" binding:"required"`
	TagType        string `json:"tag_type" binding:"required"`
	UserIdentifier string `json:"user_identifier"`
}

// Add menyimpan 1 vote. Vote ganda dijawab 400 dengan field "message".
func (h *ValidationHandler) Add(ctx *gin.Context) {
	var input addValidationRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildMessage("Data validasi tidak lengkap"))
		return
	}
	if input.UserIdentifier == "" {
		input.UserIdentifier = service.GuestAnonymousID
	}

	err := h.validationService.Add(ctx.Request.Context(), input.ReportID, input.TagType, input.UserIdentifier)
	if errors.Is(err, service.ErrDuplicateVote) {
		ctx.JSON(http.StatusBadRequest, utils.BuildMessage("Anda sudah memberikan validasi ini."))
		return
	}
	if err != nil {
		h.log.WithError(err).WithField("report_id", input.ReportID).Error("add validation failed")
		ctx.JSON(http.StatusInternalServerError, utils.BuildError("Gagal menambah validasi"))
		return
	}

	ctx.JSON(http.StatusCreated, utils.BuildMessage("Validasi ditambahkan"))
}
