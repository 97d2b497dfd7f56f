package middleware

import (
	"net/http"
	"strings"

	"safegrowth-backend/app/model"
	"safegrowth-backend/utils"

	"github.com/gin-gonic/gin"
)

// Key context yang diisi AdminOnly.
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRole     = "role"
)

// AdminOnly memvalidasi JWT dari header Authorization (Bearer token)
// dan hanya meloloskan token ber-role admin.
func AdminOnly(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.BuildError("Token otorisasi diperlukan"))
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.BuildError("Token otorisasi diperlukan"))
			return
		}

		// cek signature & expired
		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.BuildError("Token tidak valid atau kedaluwarsa"))
			return
		}
		if claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.BuildError("Akses khusus admin"))
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
