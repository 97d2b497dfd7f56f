package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers mengumpulkan semua handler API.
type Handlers struct {
	Report     *ReportHandler
	Validation *ValidationHandler
	Auth       *AuthHandler
}

// RegisterRoutes memasang semua endpoint di bawah /api, plus health check di "/".
// adminGuard kosong berarti endpoint admin terbuka (kompatibel dengan SPA lama).
func RegisterRoutes(r *gin.Engine, h Handlers, adminGuard ...gin.HandlerFunc) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "SafeGrowth API RUNNING",
		})
	})

	api := r.Group("/api")
	h.Report.SetupReportRoutes(api, adminGuard...)
	h.Validation.SetupValidationRoutes(api)
	h.Auth.SetupAuthRoutes(api)
}
