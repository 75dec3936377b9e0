package patient

import (
	"errors"
	"strings"

	"cloud.google.com/go/civil"
)

// Step langkah form pendaftaran pasien
type Step int

const (
	StepPersonal Step = iota + 1
	StepAddress
	StepFamily
	StepGuarantor
)

var (
	ErrFirstStep    = errors.New("patient: sudah di langkah pertama")
	ErrLastStep     = errors.New("patient: sudah di langkah terakhir")
	ErrNotFinalStep = errors.New("patient: simpan hanya bisa dari langkah Data Penjamin")
)

func (s Step) Valid() bool {
	return s >= StepPersonal && s <= StepGuarantor
}

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "Data Diri"
	case StepAddress:
		return "Alamat & Kontak"
	case StepFamily:
		return "Keluarga & Pekerjaan"
	case StepGuarantor:
		return "Data Penjamin"
	}
	return "Unknown"
}

var stepFields = map[string]Step{
	"fullName": StepPersonal, "nickname": StepPersonal, "title": StepPersonal, "patientType": StepPersonal,
	"idType": StepPersonal, "idNumber": StepPersonal, "kkNumber": StepPersonal, "birthPlace": StepPersonal,
	"birthDate": StepPersonal, "gender": StepPersonal, "maritalStatus": StepPersonal,
	"bloodType": StepPersonal, "religion": StepPersonal, "education": StepPersonal,

	"address": StepAddress, "province": StepAddress, "city": StepAddress, "district": StepAddress,
	"village": StepAddress, "postalCode": StepAddress, "phone": StepAddress, "email": StepAddress,

	"motherName": StepFamily, "emergencyName": StepFamily, "relationship": StepFamily,
	"emergencyPhone": StepFamily, "occupation": StepFamily, "company": StepFamily,

	"insurances": StepGuarantor,
}

// StepOf langkah tempat sebuah field form berada. "insurances[2].type" -> StepGuarantor.
func StepOf(field string) Step {
	if i := strings.IndexAny(field, "[."); i >= 0 {
		field = field[:i]
	}
	return stepFields[field]
}

// ValidateStep hanya mengembalikan error milik field di langkah s.
func ValidateStep(r *Record, s Step, today civil.Date) []FieldError {
	var out []FieldError
	for _, fe := range ValidateAt(r, today).Errors {
		if StepOf(fe.FieldName()) == s {
			out = append(out, fe)
		}
	}
	return out
}

// Prepare validasi penuh lalu klasifikasi. Kalau lolos, PatientType & Title di record
// ditimpa dengan hasil hitung ulang.
func Prepare(r *Record, today civil.Date) (Classification, error) {
	if err := ValidateAt(r, today).Err(); err != nil {
		return Classification{}, err
	}

	c, err := ClassifyAt(*r.BirthDate, Gender(normalizeEnum(r.Gender)), MaritalStatus(normalizeEnum(r.MaritalStatus)), today)
	if err != nil {
		return Classification{}, err
	}
	r.PatientType = string(c.PatientType)
	r.Title = string(c.Title)
	return c, nil
}

// Submission record yang sudah lolos validasi plus hasil klasifikasinya
type Submission struct {
	Record         *Record
	Classification Classification
}

// Intake menyimpan satu record selama pengisian form bertahap.
type Intake struct {
	record *Record
	step   Step
	today  func() civil.Date
}

func NewIntake(r *Record) *Intake {
	if r == nil {
		r = &Record{}
	}
	return &Intake{record: r, step: StepPersonal, today: Today}
}

// WithClock mengganti sumber tanggal hari ini (untuk test).
func (in *Intake) WithClock(today func() civil.Date) *Intake {
	in.today = today
	return in
}

func (in *Intake) Step() Step      { return in.step }
func (in *Intake) Record() *Record { return in.record }

// Next maju satu langkah kalau field di langkah sekarang valid.
func (in *Intake) Next() error {
	if in.step == StepGuarantor {
		return ErrLastStep
	}
	if errs := ValidateStep(in.record, in.step, in.today()); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	in.step++
	return nil
}

func (in *Intake) Back() error {
	if in.step == StepPersonal {
		return ErrFirstStep
	}
	in.step--
	return nil
}

// Submit hanya dari langkah terakhir: validasi seluruh record lalu klasifikasi.
func (in *Intake) Submit() (*Submission, error) {
	if in.step != StepGuarantor {
		return nil, ErrNotFinalStep
	}
	c, err := Prepare(in.record, in.today())
	if err != nil {
		return nil, err
	}
	return &Submission{Record: in.record, Classification: c}, nil
}
