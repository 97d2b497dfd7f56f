package routes

import (
	"errors"
	"net/http"

	"safegrowth-backend/app/service"
	"safegrowth-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler adalah pengelola request untuk login admin.
type AuthHandler struct {
	authService service.AuthService
	log         *logrus.Logger
}

// NewAuthHandler adalah constructor untuk membuat instance handler baru.
func NewAuthHandler(authService service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// SetupAuthRoutes mendaftarkan POST /login.
func (h *AuthHandler) SetupAuthRoutes(api *gin.RouterGroup) {
	api.POST("/login", h.Login)
}

// loginRequest sengaja tanpa binding:"required"; field kosong diperlakukan
// sebagai kredensial yang tidak cocok.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login memeriksa kredensial admin. Kredensial salah, kosong, atau body yang
// tidak bisa dibaca selalu 401 dengan success=false, tidak pernah 500.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var input loginRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		invalidCredentials(ctx)
		return
	}

	result, err := h.authService.Login(ctx.Request.Context(), input.Username, input.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		invalidCredentials(ctx)
		return
	}
	if err != nil {
		h.log.WithError(err).Error("login failed")
		ctx.JSON(http.StatusInternalServerError, utils.LoginResponse{
			Success: false,
			Message: "Server Error",
		})
		return
	}

	user := &utils.LoginUser{ID: result.User.ID, Role: result.User.Role}
	if result.User.Username != nil {
		user.Username = *result.User.Username
	}
	ctx.JSON(http.StatusOK, utils.LoginResponse{
		Success: true,
		Message: "Login Berhasil",
		User:    user,
		Token:   result.Token,
	})
}

func invalidCredentials(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, utils.LoginResponse{
		Success: false,
		Message: "Username atau Password salah!",
	})
}
