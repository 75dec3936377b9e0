package reminder

import (
	"context"
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"simrs-backend/internal/patient"
	"simrs-backend/internal/repository"
)

// Notifier dipenuhi oleh utils.FCMClient
type Notifier interface {
	SendNotification(ctx context.Context, token, title, body string, data map[string]string) error
}

// Item satu baris laporan penjamin yang akan/sudah habis masa berlakunya
type Item struct {
	GuarantorID uint64           `json:"guarantorId"`
	PatientID   uint64           `json:"patientId"`
	MRNumber    string           `json:"mrNumber"`
	FullName    string           `json:"fullName"`
	Type        string           `json:"type"`
	Company     string           `json:"company"`
	CardNumber  string           `json:"cardNumber"`
	ExpiryDate  civil.Date       `json:"expiryDate"`
	DaysLeft    int              `json:"daysLeft"`
	Status      patient.Coverage `json:"status"`
}

type Report struct {
	Today      civil.Date `json:"today"`
	WindowDays int        `json:"windowDays"`
	Items      []Item     `json:"items"`
}

type Service struct {
	patients repository.PatientRepository
	users    repository.UserRepository
	notifier Notifier
	logger   zerolog.Logger
}

// NewService notifier boleh nil (push dimatikan)
func NewService(patients repository.PatientRepository, users repository.UserRepository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{patients: patients, users: users, notifier: notifier, logger: logger}
}

// Report daftar penjamin yang habis dalam windowDays hari ke depan (termasuk hari ini).
func (s *Service) Report(ctx context.Context, today civil.Date, windowDays int) (*Report, error) {
	if windowDays < 0 {
		windowDays = 0
	}
	guarantors, err := s.patients.ExpiringGuarantors(ctx, today, today.AddDays(windowDays))
	if err != nil {
		return nil, err
	}

	report := &Report{Today: today, WindowDays: windowDays, Items: make([]Item, 0, len(guarantors))}
	for _, g := range guarantors {
		if g.ExpiryDate == nil {
			continue
		}
		item := Item{
			GuarantorID: g.ID,
			PatientID:   g.PatientID,
			Type:        g.Type,
			Company:     g.Company,
			CardNumber:  g.CardNumber,
			ExpiryDate:  g.ExpiryDate.Date,
			DaysLeft:    patient.DaysLeft(g.ExpiryDate.Date, today),
			Status:      patient.CoverageStatus(g.ExpiryDate.Civil(), today, windowDays),
		}
		if g.Patient != nil {
			item.MRNumber = g.Patient.MRNumber
			item.FullName = g.Patient.FullName
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// Notify kirim ringkasan laporan ke semua device petugas. Mengembalikan jumlah yang terkirim.
func (s *Service) Notify(ctx context.Context, report *Report) (int, error) {
	if s.notifier == nil || len(report.Items) == 0 {
		return 0, nil
	}

	tokens, err := s.users.StaffTokens(ctx)
	if err != nil {
		return 0, err
	}

	title := "Kartu penjamin segera habis"
	body := fmt.Sprintf("%d kartu penjamin pasien habis dalam %d hari ke depan", len(report.Items), report.WindowDays)
	data := map[string]string{
		"type":  "guarantor_expiry",
		"count": strconv.Itoa(len(report.Items)),
		"date":  report.Today.String(),
	}

	sent := 0
	for _, token := range tokens {
		if err := s.notifier.SendNotification(ctx, token, title, body, data); err != nil {
			s.logger.Warn().Err(err).Msg("gagal kirim notifikasi")
			continue
		}
		sent++
	}
	return sent, nil
}
