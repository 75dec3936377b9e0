package patient

import (
	"strings"

	"cloud.google.com/go/civil"
)

// Record adalah isi form pendaftaran pasien apa adanya dari frontend.
// PatientType dan Title boleh dikirim client tapi selalu dihitung ulang saat simpan.
type Record struct {
	// Data Diri
	FullName      string      `json:"fullName"`
	Nickname      string      `json:"nickname,omitempty"`
	Title         string      `json:"title,omitempty"`
	PatientType   string      `json:"patientType,omitempty"`
	IDType        string      `json:"idType,omitempty"`
	IDNumber      string      `json:"idNumber"`
	KKNumber      string      `json:"kkNumber,omitempty"`
	BirthPlace    string      `json:"birthPlace,omitempty"`
	BirthDate     *civil.Date `json:"birthDate"`
	Gender        string      `json:"gender"`
	MaritalStatus string      `json:"maritalStatus"`
	BloodType     string      `json:"bloodType,omitempty"`
	Religion      string      `json:"religion,omitempty"`
	Education     string      `json:"education,omitempty"`

	// Alamat & Kontak
	Address    string `json:"address,omitempty"`
	Province   string `json:"province,omitempty"`
	City       string `json:"city,omitempty"`
	District   string `json:"district,omitempty"`
	Village    string `json:"village,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`

	// Keluarga & Pekerjaan
	MotherName     string `json:"motherName,omitempty"`
	EmergencyName  string `json:"emergencyName,omitempty"`
	Relationship   string `json:"relationship,omitempty"`
	EmergencyPhone string `json:"emergencyPhone,omitempty"`
	Occupation     string `json:"occupation,omitempty"`
	Company        string `json:"company,omitempty"`

	// Data Penjamin
	Insurances []Insurance `json:"insurances"`
}

// Insurance satu baris penjamin (BPJS, asuransi swasta, perusahaan, umum)
type Insurance struct {
	Type       string      `json:"type"`
	Company    string      `json:"company"`
	CardNumber string      `json:"cardNumber"`
	Class      string      `json:"class,omitempty"`
	ExpiryDate *civil.Date `json:"expiryDate,omitempty"`
}

// Normalize merapikan input: spasi dibuang, nilai enum di-lowercase.
func (r *Record) Normalize() {
	for _, f := range []*string{
		&r.FullName, &r.Nickname, &r.IDNumber, &r.KKNumber, &r.BirthPlace,
		&r.BloodType, &r.Religion, &r.Education,
		&r.Address, &r.Province, &r.City, &r.District, &r.Village, &r.PostalCode,
		&r.Phone, &r.Email,
		&r.MotherName, &r.EmergencyName, &r.Relationship, &r.EmergencyPhone,
		&r.Occupation, &r.Company,
	} {
		*f = strings.TrimSpace(*f)
	}
	r.IDType = normalizeEnum(r.IDType)
	r.Gender = normalizeEnum(r.Gender)
	r.MaritalStatus = normalizeEnum(r.MaritalStatus)

	for i := range r.Insurances {
		ins := &r.Insurances[i]
		ins.Type = normalizeEnum(ins.Type)
		ins.Company = strings.TrimSpace(ins.Company)
		ins.CardNumber = strings.TrimSpace(ins.CardNumber)
		ins.Class = strings.TrimSpace(ins.Class)
	}
}

// AddInsurance menambah penjamin di akhir list
func (r *Record) AddInsurance(ins Insurance) {
	r.Insurances = append(r.Insurances, ins)
}

// RemoveInsurance menghapus penjamin pada index i, urutan sisanya tetap.
func (r *Record) RemoveInsurance(i int) bool {
	if i < 0 || i >= len(r.Insurances) {
		return false
	}
	r.Insurances = append(r.Insurances[:i], r.Insurances[i+1:]...)
	return true
}
