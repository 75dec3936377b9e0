package patient

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// FieldError adalah error validasi yang menempel ke satu field form.
// Nama field mengikuti key JSON, contoh "birthDate" atau "insurances[1].cardNumber".
type FieldError interface {
	error
	FieldName() string
	Code() string
}

// RequiredFieldError: field wajib tidak diisi
type RequiredFieldError struct {
	Field   string
	Message string
}

func (e *RequiredFieldError) Error() string     { return e.Field + ": " + e.Message }
func (e *RequiredFieldError) FieldName() string { return e.Field }
func (e *RequiredFieldError) Code() string      { return "required" }

// DateRangeError: tanggal di luar rentang [Min, Max]
type DateRangeError struct {
	Field   string
	Value   civil.Date
	Min     civil.Date
	Max     civil.Date
	Message string
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("%s: %s (%s di luar %s..%s)", e.Field, e.Message, e.Value, e.Min, e.Max)
}
func (e *DateRangeError) FieldName() string { return e.Field }
func (e *DateRangeError) Code() string      { return "date_range" }

// InvalidInputError: nilai enum di luar pilihan yang tersedia
type InvalidInputError struct {
	Field   string
	Value   string
	Allowed []string
	Message string
}

func (e *InvalidInputError) Error() string     { return e.Field + ": " + e.Message }
func (e *InvalidInputError) FieldName() string { return e.Field }
func (e *InvalidInputError) Code() string      { return "invalid_input" }

// InvalidDateError: tanggal lahir setelah tanggal acuan, umur tidak terdefinisi
type InvalidDateError struct {
	BirthDate civil.Date
	Reference civil.Date
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("birthDate: tanggal lahir %s setelah tanggal acuan %s", e.BirthDate, e.Reference)
}
func (e *InvalidDateError) FieldName() string { return "birthDate" }
func (e *InvalidDateError) Code() string      { return "invalid_date" }

// ValidationError membungkus seluruh FieldError hasil satu kali validasi.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "validasi gagal: " + strings.Join(msgs, "; ")
}

// Details mengubah error menjadi bentuk yang dikirim ke frontend.
func (e *ValidationError) Details() []FieldMessage {
	return toMessages(e.Errors)
}

// FieldMessage bentuk JSON satu error field
type FieldMessage struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toMessages(errs []FieldError) []FieldMessage {
	out := make([]FieldMessage, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldMessage{Field: fe.FieldName(), Code: fe.Code(), Message: message(fe)})
	}
	return out
}

func message(fe FieldError) string {
	switch e := fe.(type) {
	case *RequiredFieldError:
		return e.Message
	case *DateRangeError:
		return e.Message
	case *InvalidInputError:
		return e.Message
	}
	return fe.Error()
}
