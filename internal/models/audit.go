package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
)

// PatientAudit snapshot data pasien setiap kali disimpan
type PatientAudit struct {
	ID        uint64         `gorm:"primaryKey" json:"id"`
	PatientID uint64         `gorm:"not null;index" json:"patient_id"`
	Action    string         `gorm:"size:10;not null" json:"action"`
	ActorID   uint64         `json:"actor_id"`
	Snapshot  datatypes.JSON `json:"snapshot"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func NewPatientAudit(p *Patient, action string, actorID uint64) (*PatientAudit, error) {
	snap, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &PatientAudit{
		PatientID: p.ID,
		Action:    action,
		ActorID:   actorID,
		Snapshot:  datatypes.JSON(snap),
	}, nil
}
