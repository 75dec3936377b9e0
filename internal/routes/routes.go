package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"simrs-backend/internal/handlers"
	"simrs-backend/internal/middleware"
	"simrs-backend/pkg/utils"
)

// SetupRoutes memasang middleware global dan semua endpoint /api/v1
func SetupRoutes(r *gin.Engine, h *handlers.Handler, limiter *middleware.IPRateLimiter, corsOrigins []string, logger zerolog.Logger) {
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(corsOrigins))
	if limiter != nil {
		r.Use(middleware.RateLimitMiddleware(limiter))
	}

	r.GET("/ping", func(c *gin.Context) {
		utils.APIResponse(c, 200, true, "Server OK!", nil)
	})

	// Grouping API dengan Versi (v1)
	api := r.Group("/api/v1")
	{
		// Grouping Auth
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.GET("/me", middleware.AuthMiddleware(h.Tokens), h.GetMe)
			auth.POST("/register", middleware.AuthMiddleware(h.Tokens), middleware.AdminOnly(), h.Register)
		}

		// PROTECTED ROUTES (Harus Login / Punya Token)
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(h.Tokens))
		{
			// MODULE PASIEN
			patients := protected.Group("/patients")
			{
				patients.GET("", h.ListPatients)
				patients.GET("/:id", h.GetPatient)
				patients.POST("/classify", h.ClassifyPatient)
				patients.POST("/steps/:step/validate", h.ValidateStep)

				// Simpan data hanya petugas pendaftaran
				patients.POST("", middleware.RegistrationStaff(), h.CreatePatient)
				patients.PUT("/:id", middleware.RegistrationStaff(), h.UpdatePatient)
			}

			// MODULE PENJAMIN
			guarantors := protected.Group("/guarantors")
			{
				guarantors.GET("/by-patient/:id", h.GetGuarantorsByPatient)
				guarantors.GET("/expiring", h.GetExpiringGuarantors)
			}

			protected.GET("/dashboard/stats", h.GetDashboardStats)
		}
	}
}
