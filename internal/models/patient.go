package models

import (
	"fmt"
	"time"

	"simrs-backend/internal/patient"
)

// Patient merepresentasikan tabel 'patients'
type Patient struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	MRNumber string `gorm:"column:mr_number;size:20;index" json:"mrNumber"` // No. Rekam Medis, diisi setelah insert

	// Data Diri
	FullName      string                `gorm:"size:150;not null;index" json:"fullName"`
	Nickname      string                `gorm:"size:50" json:"nickname,omitempty"`
	Title         patient.Title         `gorm:"size:10" json:"title"`
	PatientType   patient.PatientType   `gorm:"size:10;index" json:"patientType"`
	IDType        string                `gorm:"size:10" json:"idType,omitempty"`
	IDNumber      string                `gorm:"size:32;not null;index" json:"idNumber"`
	KKNumber      string                `gorm:"size:32" json:"kkNumber,omitempty"`
	BirthPlace    string                `gorm:"size:100" json:"birthPlace,omitempty"`
	BirthDate     Date                  `gorm:"not null" json:"birthDate"`
	Gender        patient.Gender        `gorm:"size:10;not null;index" json:"gender"`
	MaritalStatus patient.MaritalStatus `gorm:"size:10;not null" json:"maritalStatus"`
	BloodType     string                `gorm:"size:5" json:"bloodType,omitempty"`
	Religion      string                `gorm:"size:30" json:"religion,omitempty"`
	Education     string                `gorm:"size:50" json:"education,omitempty"`

	// Alamat & Kontak
	Address    string `gorm:"type:text" json:"address,omitempty"`
	Province   string `gorm:"size:100" json:"province,omitempty"`
	City       string `gorm:"size:100" json:"city,omitempty"`
	District   string `gorm:"size:100" json:"district,omitempty"`
	Village    string `gorm:"size:100" json:"village,omitempty"`
	PostalCode string `gorm:"size:10" json:"postalCode,omitempty"`
	Phone      string `gorm:"size:20" json:"phone,omitempty"`
	Email      string `gorm:"size:100" json:"email,omitempty"`

	// Keluarga & Pekerjaan
	MotherName     string `gorm:"size:150" json:"motherName,omitempty"`
	EmergencyName  string `gorm:"size:150" json:"emergencyName,omitempty"`
	Relationship   string `gorm:"size:50" json:"relationship,omitempty"`
	EmergencyPhone string `gorm:"size:20" json:"emergencyPhone,omitempty"`
	Occupation     string `gorm:"size:100" json:"occupation,omitempty"`
	Company        string `gorm:"size:150" json:"company,omitempty"`

	CreatedBy uint64    `json:"createdBy,omitempty"`
	UpdatedBy uint64    `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relasi (Has Many), urut sesuai input form
	Guarantors []Guarantor `gorm:"foreignKey:PatientID" json:"insurances"`
}

// FormatMRNumber No. RM dari ID: MR000042
func FormatMRNumber(id uint64) string {
	return fmt.Sprintf("MR%06d", id)
}

// NewPatient membangun row dari record yang sudah lolos patient.Prepare.
// Tipe & sapaan diambil dari hasil klasifikasi, bukan dari input client.
func NewPatient(r *patient.Record, c patient.Classification) *Patient {
	p := &Patient{
		FullName:       r.FullName,
		Nickname:       r.Nickname,
		Title:          c.Title,
		PatientType:    c.PatientType,
		IDType:         r.IDType,
		IDNumber:       r.IDNumber,
		KKNumber:       r.KKNumber,
		BirthPlace:     r.BirthPlace,
		Gender:         patient.Gender(r.Gender),
		MaritalStatus:  patient.MaritalStatus(r.MaritalStatus),
		BloodType:      r.BloodType,
		Religion:       r.Religion,
		Education:      r.Education,
		Address:        r.Address,
		Province:       r.Province,
		City:           r.City,
		District:       r.District,
		Village:        r.Village,
		PostalCode:     r.PostalCode,
		Phone:          r.Phone,
		Email:          r.Email,
		MotherName:     r.MotherName,
		EmergencyName:  r.EmergencyName,
		Relationship:   r.Relationship,
		EmergencyPhone: r.EmergencyPhone,
		Occupation:     r.Occupation,
		Company:        r.Company,
	}
	if r.BirthDate != nil {
		p.BirthDate = NewDate(*r.BirthDate)
	}

	p.Guarantors = make([]Guarantor, 0, len(r.Insurances))
	for i, ins := range r.Insurances {
		p.Guarantors = append(p.Guarantors, Guarantor{
			Position:   i,
			Type:       ins.Type,
			Company:    ins.Company,
			CardNumber: ins.CardNumber,
			Class:      ins.Class,
			ExpiryDate: DatePtr(ins.ExpiryDate),
		})
	}
	return p
}

// ToRecord kebalikan NewPatient, dipakai saat form edit di-load.
func (p *Patient) ToRecord() *patient.Record {
	birth := p.BirthDate.Date
	r := &patient.Record{
		FullName:       p.FullName,
		Nickname:       p.Nickname,
		Title:          string(p.Title),
		PatientType:    string(p.PatientType),
		IDType:         p.IDType,
		IDNumber:       p.IDNumber,
		KKNumber:       p.KKNumber,
		BirthPlace:     p.BirthPlace,
		BirthDate:      &birth,
		Gender:         string(p.Gender),
		MaritalStatus:  string(p.MaritalStatus),
		BloodType:      p.BloodType,
		Religion:       p.Religion,
		Education:      p.Education,
		Address:        p.Address,
		Province:       p.Province,
		City:           p.City,
		District:       p.District,
		Village:        p.Village,
		PostalCode:     p.PostalCode,
		Phone:          p.Phone,
		Email:          p.Email,
		MotherName:     p.MotherName,
		EmergencyName:  p.EmergencyName,
		Relationship:   p.Relationship,
		EmergencyPhone: p.EmergencyPhone,
		Occupation:     p.Occupation,
		Company:        p.Company,
		Insurances:     make([]patient.Insurance, 0, len(p.Guarantors)),
	}
	for _, g := range p.Guarantors {
		r.Insurances = append(r.Insurances, g.ToInsurance())
	}
	return r
}

// PatientStats ringkasan untuk dashboard
type PatientStats struct {
	TotalPatients      int64            `json:"totalPatients"`
	ByPatientType      map[string]int64 `json:"byPatientType"`
	ByGender           map[string]int64 `json:"byGender"`
	RegisteredToday    int64            `json:"registeredToday"`
	ExpiringGuarantors int64            `json:"expiringGuarantors"`
}
