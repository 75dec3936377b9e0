package patient

import (
	"fmt"
	"strings"
)

// Gender jenis kelamin pasien
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var genderValues = []string{string(GenderMale), string(GenderFemale)}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Label dipakai untuk tampilan (Laki-laki / Perempuan)
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Laki-laki"
	case GenderFemale:
		return "Perempuan"
	}
	return string(g)
}

func ParseGender(s string) (Gender, error) {
	g := Gender(normalizeEnum(s))
	if !g.Valid() {
		return "", invalidInput("gender", s, genderValues)
	}
	return g, nil
}

// MaritalStatus status pernikahan
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

var maritalValues = []string{
	string(MaritalSingle), string(MaritalMarried), string(MaritalDivorced), string(MaritalWidowed),
}

func (m MaritalStatus) Valid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed:
		return true
	}
	return false
}

func (m MaritalStatus) Label() string {
	switch m {
	case MaritalSingle:
		return "Belum Menikah"
	case MaritalMarried:
		return "Menikah"
	case MaritalDivorced:
		return "Cerai"
	case MaritalWidowed:
		return "Janda/Duda"
	}
	return string(m)
}

func ParseMaritalStatus(s string) (MaritalStatus, error) {
	m := MaritalStatus(normalizeEnum(s))
	if !m.Valid() {
		return "", invalidInput("maritalStatus", s, maritalValues)
	}
	return m, nil
}

// IDType jenis kartu identitas (opsional)
type IDType string

const (
	IDTypeKTP      IDType = "ktp"
	IDTypeSIM      IDType = "sim"
	IDTypePassport IDType = "passport"
)

var idTypeValues = []string{string(IDTypeKTP), string(IDTypeSIM), string(IDTypePassport)}

func (t IDType) Valid() bool {
	return t == IDTypeKTP || t == IDTypeSIM || t == IDTypePassport
}

// PatientType klasifikasi pasien berdasarkan umur
type PatientType string

const (
	PatientTypeAdult  PatientType = "Dewasa"
	PatientTypeChild  PatientType = "Anak"
	PatientTypeInfant PatientType = "Bayi"
)

// Title sapaan yang dicetak di dokumen pasien
type Title string

const (
	TitleTuan   Title = "Tuan"
	TitleNyonya Title = "Nyonya"
	TitleNona   Title = "Nona"
	TitleAnak   Title = "Anak"
	TitleBayi   Title = "Bayi"
)

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func invalidInput(field, value string, allowed []string) *InvalidInputError {
	return &InvalidInputError{
		Field:   field,
		Value:   value,
		Allowed: allowed,
		Message: fmt.Sprintf("Nilai %q tidak valid, pilih salah satu: %s.", value, strings.Join(allowed, ", ")),
	}
}
