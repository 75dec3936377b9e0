package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simrs-backend/pkg/utils"
)

// GetDashboardStats ringkasan pendaftaran pasien untuk halaman dashboard
func (h *Handler) GetDashboardStats(c *gin.Context) {
	today := h.today()

	// Hitung total per tipe pasien, per gender, pendaftar hari ini,
	// dan kartu penjamin yang habis dalam ExpiryWindow hari
	stats, err := h.Patients.Stats(c.Request.Context(), today, h.ExpiryWindow)
	if err != nil {
		h.Logger.Error().Err(err).Msg("gagal hitung statistik dashboard")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil data dashboard", nil)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Data Dashboard", gin.H{
		"date":         today,
		"expiryWindow": h.ExpiryWindow,
		"stats":        stats,
	})
}
