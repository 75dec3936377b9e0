package handlers

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"simrs-backend/internal/events"
	"simrs-backend/internal/models"
	"simrs-backend/internal/patient"
	"simrs-backend/internal/reminder"
	"simrs-backend/internal/repository"
	"simrs-backend/pkg/utils"
)

// Handler mengumpulkan semua dependency yang dipakai endpoint
type Handler struct {
	Patients     repository.PatientRepository
	Users        repository.UserRepository
	Events       events.Publisher
	Reminders    *reminder.Service
	Tokens       *utils.TokenManager
	Logger       zerolog.Logger
	Today        func() civil.Date
	ExpiryWindow int // hari, untuk laporan & dashboard
}

func New(patients repository.PatientRepository, users repository.UserRepository, publisher events.Publisher,
	reminders *reminder.Service, tokens *utils.TokenManager, logger zerolog.Logger, expiryWindow int) *Handler {
	if expiryWindow <= 0 {
		expiryWindow = patient.DefaultExpiryWindow
	}
	return &Handler{
		Patients:     patients,
		Users:        users,
		Events:       publisher,
		Reminders:    reminders,
		Tokens:       tokens,
		Logger:       logger,
		Today:        patient.Today,
		ExpiryWindow: expiryWindow,
	}
}

func (h *Handler) today() civil.Date {
	if h.Today != nil {
		return h.Today()
	}
	return patient.Today()
}

// currentUserID hasil AuthMiddleware, 0 kalau tidak ada
func currentUserID(c *gin.Context) uint64 {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint64); ok {
			return id
		}
	}
	return 0
}

// publish gagal kirim event cukup di-log, data pasien sudah tersimpan
func (h *Handler) publish(ctx context.Context, eventType string, p *models.Patient, actorID uint64) {
	if h.Events == nil {
		return
	}
	e := events.NewPatientEvent(eventType, p, actorID)
	if err := h.Events.Publish(ctx, e); err != nil {
		h.Logger.Error().Err(err).
			Str("event_id", e.ID).
			Uint64("patient_id", p.ID).
			Msg("gagal publish event pasien")
	}
}
