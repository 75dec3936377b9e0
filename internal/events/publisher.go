package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"simrs-backend/internal/models"
)

const (
	PatientCreated = "patient.created"
	PatientUpdated = "patient.updated"
)

// Event dikirim setiap kali data pasien tersimpan
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	PatientID   uint64    `json:"patientId"`
	MRNumber    string    `json:"mrNumber"`
	PatientType string    `json:"patientType"`
	Title       string    `json:"title"`
	Guarantors  int       `json:"guarantors"`
	ActorID     uint64    `json:"actorId"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewPatientEvent(eventType string, p *models.Patient, actorID uint64) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		PatientID:   p.ID,
		MRNumber:    p.MRNumber,
		PatientType: string(p.PatientType),
		Title:       string(p.Title),
		Guarantors:  len(p.Guarantors),
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// LogPublisher dipakai kalau Kafka tidak dikonfigurasi: event cukup dicatat di log.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.Info().
		Str("event_id", e.ID).
		Str("type", e.Type).
		Uint64("patient_id", e.PatientID).
		Str("mr_number", e.MRNumber).
		Msg("patient event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// NewPublisher memilih Kafka kalau broker diisi, selain itu log saja.
func NewPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	if len(brokers) == 0 {
		return NewLogPublisher(logger)
	}
	return NewKafkaPublisher(brokers, topic, logger)
}
