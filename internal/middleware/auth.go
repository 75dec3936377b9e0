package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"simrs-backend/internal/models"
	"simrs-backend/pkg/utils"
)

func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Ambil Header Authorization
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Token tidak ditemukan", nil)
			c.Abort()
			return
		}

		// 2. Format harus "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Format token salah", nil)
			c.Abort()
			return
		}

		// 3. Validasi Token
		claims, err := tokens.ValidateToken(parts[1])
		if err != nil || claims.UserID == 0 {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Token tidak valid", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RoleOnly hanya meloloskan petugas dengan salah satu role yang disebut
func RoleOnly(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			utils.APIResponse(c, http.StatusForbidden, false, "Akses Ditolak", nil)
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		utils.APIResponse(c, http.StatusForbidden, false, "Akses Ditolak: role "+role+" tidak diizinkan", nil)
		c.Abort()
	}
}

// AdminOnly: Hanya untuk role admin
func AdminOnly() gin.HandlerFunc {
	return RoleOnly(models.RoleAdmin)
}

// RegistrationStaff: yang boleh mengubah data pendaftaran pasien
func RegistrationStaff() gin.HandlerFunc {
	return RoleOnly(models.RoleAdmin, models.RoleRegistrar)
}
