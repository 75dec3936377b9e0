package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

// GetMe mengambil data petugas yang sedang login
func (h *Handler) GetMe(c *gin.Context) {
	// 1. Ambil User ID dari Context (hasil AuthMiddleware)
	userID := currentUserID(c)
	if userID == 0 {
		utils.APIResponse(c, http.StatusUnauthorized, false, "Unauthorized", nil)
		return
	}

	// 2. Cari di Database
	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.APIResponse(c, http.StatusNotFound, false, "User tidak ditemukan", nil)
			return
		}
		h.Logger.Error().Err(err).Uint64("user_id", userID).Msg("gagal ambil user")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil data user", nil)
		return
	}

	// 3. Return Data (Tanpa Password)
	utils.APIResponse(c, http.StatusOK, true, "Data Profile Berhasil Diambil", gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"full_name": user.FullName,
		"email":     user.Email,
		"role":      user.Role,
	})
}
