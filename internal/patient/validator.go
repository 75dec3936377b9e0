package patient

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
)

// MinBirthDate batas bawah tanggal lahir (inklusif)
var MinBirthDate = civil.Date{Year: 1900, Month: time.January, Day: 1}

// maxExpiryDate hanya untuk melengkapi DateRangeError, tanggal kadaluarsa tidak dibatasi ke atas.
var maxExpiryDate = civil.Date{Year: 9999, Month: time.December, Day: 31}

var fieldValidator = validator.New()

// ValidationResult hasil validasi satu record. Kosong berarti lolos.
type ValidationResult struct {
	Errors []FieldError
}

func (v ValidationResult) OK() bool {
	return len(v.Errors) == 0
}

// Err mengembalikan nil kalau lolos, selain itu *ValidationError.
func (v ValidationResult) Err() error {
	if v.OK() {
		return nil
	}
	return &ValidationError{Errors: v.Errors}
}

func (v ValidationResult) Details() []FieldMessage {
	return toMessages(v.Errors)
}

// Validate memeriksa record terhadap tanggal hari ini.
func Validate(r *Record) ValidationResult {
	return ValidateAt(r, Today())
}

// ValidateAt memeriksa semua field sekaligus (tidak berhenti di error pertama),
// urut sesuai posisi field di form lalu index penjamin.
func ValidateAt(r *Record, today civil.Date) ValidationResult {
	var errs []FieldError

	if isBlank(r.FullName) {
		errs = append(errs, required("fullName", "Nama lengkap wajib diisi."))
	}
	if !isBlank(r.IDType) && !IDType(normalizeEnum(r.IDType)).Valid() {
		errs = append(errs, invalidInput("idType", r.IDType, idTypeValues))
	}
	if isBlank(r.IDNumber) {
		errs = append(errs, required("idNumber", "Nomor identitas wajib diisi."))
	}
	if fe := CheckBirthDate(r.BirthDate, today); fe != nil {
		errs = append(errs, fe)
	}

	switch {
	case isBlank(r.Gender):
		errs = append(errs, required("gender", "Jenis kelamin harus dipilih."))
	case !Gender(normalizeEnum(r.Gender)).Valid():
		errs = append(errs, invalidInput("gender", r.Gender, genderValues))
	}

	switch {
	case isBlank(r.MaritalStatus):
		errs = append(errs, required("maritalStatus", "Status pernikahan wajib dipilih."))
	case !MaritalStatus(normalizeEnum(r.MaritalStatus)).Valid():
		errs = append(errs, invalidInput("maritalStatus", r.MaritalStatus, maritalValues))
	}

	if !isBlank(r.Email) {
		if err := fieldValidator.Var(strings.TrimSpace(r.Email), "email"); err != nil {
			errs = append(errs, &InvalidInputError{Field: "email", Value: r.Email, Message: "Email tidak valid."})
		}
	}

	for i, ins := range r.Insurances {
		errs = append(errs, validateInsurance(i, ins)...)
	}

	return ValidationResult{Errors: errs}
}

func validateInsurance(i int, ins Insurance) []FieldError {
	var errs []FieldError
	field := func(name string) string { return fmt.Sprintf("insurances[%d].%s", i, name) }

	if isBlank(ins.Type) {
		errs = append(errs, required(field("type"), "Tipe wajib diisi"))
	}
	if isBlank(ins.Company) {
		errs = append(errs, required(field("company"), "Perusahaan wajib diisi"))
	}
	if isBlank(ins.CardNumber) {
		errs = append(errs, required(field("cardNumber"), "No. Kartu wajib diisi"))
	}
	if ins.ExpiryDate != nil && ins.ExpiryDate.Before(MinBirthDate) {
		errs = append(errs, &DateRangeError{
			Field:   field("expiryDate"),
			Value:   *ins.ExpiryDate,
			Min:     MinBirthDate,
			Max:     maxExpiryDate,
			Message: "Tanggal kadaluarsa tidak valid.",
		})
	}
	return errs
}

// CheckBirthDate tanggal lahir wajib ada dan di rentang [MinBirthDate, today].
// Harus lolos sebelum klasifikasi dijalankan.
func CheckBirthDate(d *civil.Date, today civil.Date) FieldError {
	if d == nil {
		return required("birthDate", "Tanggal lahir harus diisi.")
	}
	if d.Before(MinBirthDate) {
		return &DateRangeError{
			Field: "birthDate", Value: *d, Min: MinBirthDate, Max: today,
			Message: "Tanggal lahir tidak boleh sebelum 1 Januari 1900.",
		}
	}
	if d.After(today) {
		return &DateRangeError{
			Field: "birthDate", Value: *d, Min: MinBirthDate, Max: today,
			Message: "Tanggal lahir tidak boleh melebihi hari ini.",
		}
	}
	return nil
}

func required(field, msg string) *RequiredFieldError {
	return &RequiredFieldError{Field: field, Message: msg}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
