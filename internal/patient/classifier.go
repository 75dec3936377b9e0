package patient

import (
	"time"

	"cloud.google.com/go/civil"
)

// Batas umur (tahun) untuk klasifikasi. Batas bawah eksklusif: umur 1 sudah Anak, umur 14 sudah Dewasa.
const (
	InfantAgeLimit = 1
	ChildAgeLimit  = 14
)

// Classification hasil turunan dari tanggal lahir, gender dan status pernikahan
type Classification struct {
	Age         int         `json:"age"`
	PatientType PatientType `json:"patientType"`
	Title       Title       `json:"title"`
}

// Today tanggal hari ini menurut zona waktu lokal server (atur lewat TZ).
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// ComputeAge menghitung umur dalam tahun penuh antara birthDate dan referenceDate.
func ComputeAge(birthDate, referenceDate civil.Date) (int, error) {
	if birthDate.After(referenceDate) {
		return 0, &InvalidDateError{BirthDate: birthDate, Reference: referenceDate}
	}

	age := referenceDate.Year - birthDate.Year
	if referenceDate.Month < birthDate.Month ||
		(referenceDate.Month == birthDate.Month && referenceDate.Day < birthDate.Day) {
		age--
	}
	return age, nil
}

// Classify menentukan tipe pasien dan sapaan per hari ini.
func Classify(birthDate civil.Date, gender Gender, status MaritalStatus) (Classification, error) {
	return ClassifyAt(birthDate, gender, status, Today())
}

// ClassifyAt sama dengan Classify tapi dengan tanggal acuan eksplisit.
func ClassifyAt(birthDate civil.Date, gender Gender, status MaritalStatus, today civil.Date) (Classification, error) {
	if !gender.Valid() {
		return Classification{}, invalidInput("gender", string(gender), genderValues)
	}
	if !status.Valid() {
		return Classification{}, invalidInput("maritalStatus", string(status), maritalValues)
	}

	age, err := ComputeAge(birthDate, today)
	if err != nil {
		return Classification{}, err
	}

	c := Classification{Age: age}
	switch {
	case age < InfantAgeLimit:
		c.PatientType, c.Title = PatientTypeInfant, TitleBayi
	case age < ChildAgeLimit:
		c.PatientType, c.Title = PatientTypeChild, TitleAnak
	default:
		c.PatientType, c.Title = PatientTypeAdult, adultTitle(gender, status)
	}
	return c, nil
}

// Perempuan dewasa selain "married" (termasuk cerai & janda) jatuh ke Nona.
func adultTitle(gender Gender, status MaritalStatus) Title {
	if gender == GenderMale {
		return TitleTuan
	}
	if status == MaritalMarried {
		return TitleNyonya
	}
	return TitleNona
}
