package models

import (
	"time"

	"simrs-backend/internal/patient"
)

// Guarantor data penjamin pasien (tabel 'guarantors')
type Guarantor struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	PatientID  uint64    `gorm:"not null;index" json:"patientId"`
	Position   int       `gorm:"not null;default:0" json:"-"`
	Type       string    `gorm:"size:30;not null" json:"type"` // bpjs, asuransi, perusahaan, umum
	Company    string    `gorm:"size:150;not null" json:"company"`
	CardNumber string    `gorm:"size:50;not null" json:"cardNumber"`
	Class      string    `gorm:"size:20" json:"class,omitempty"`
	ExpiryDate *Date     `gorm:"index" json:"expiryDate,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (g Guarantor) ToInsurance() patient.Insurance {
	return patient.Insurance{
		Type:       g.Type,
		Company:    g.Company,
		CardNumber: g.CardNumber,
		Class:      g.Class,
		ExpiryDate: g.ExpiryDate.Civil(),
	}
}
