package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simrs-backend/internal/models"
	"simrs-backend/pkg/utils"
)

// GetGuarantorsByPatient list penjamin satu pasien, urut sesuai input form
func (h *Handler) GetGuarantorsByPatient(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		utils.APIResponse(c, http.StatusBadRequest, false, "ID pasien tidak valid", nil)
		return
	}

	guarantors, err := h.Patients.GuarantorsByPatient(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err, "Pasien tidak ditemukan", "Gagal mengambil data penjamin")
		return
	}
	if guarantors == nil {
		guarantors = []models.Guarantor{}
	}
	utils.APIResponse(c, http.StatusOK, true, "Data Penjamin Pasien", guarantors)
}

// GetExpiringGuarantors laporan kartu penjamin yang habis dalam ?days= hari
func (h *Handler) GetExpiringGuarantors(c *gin.Context) {
	days := h.ExpiryWindow
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 365 {
			utils.APIResponse(c, http.StatusBadRequest, false, "Parameter days harus 0 sampai 365", nil)
			return
		}
		days = n
	}

	report, err := h.Reminders.Report(c.Request.Context(), h.today(), days)
	if err != nil {
		h.Logger.Error().Err(err).Msg("gagal membuat laporan penjamin")
		utils.APIResponse(c, http.StatusInternalServerError, false, "Gagal mengambil data penjamin", nil)
		return
	}
	utils.APIResponse(c, http.StatusOK, true, "Penjamin Segera Habis", report)
}
