package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// UnmarshalJSON birthDate kosong ("" atau null) dibaca sebagai belum diisi,
// supaya muncul sebagai error field saat validasi, bukan error decode.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	aux := struct {
		*plain
		BirthDate json.RawMessage `json:"birthDate"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d, err := parseDateField(aux.BirthDate)
	if err != nil {
		return fmt.Errorf("birthDate: %w", err)
	}
	r.BirthDate = d
	return nil
}

// UnmarshalJSON sama seperti Record, untuk expiryDate
func (ins *Insurance) UnmarshalJSON(b []byte) error {
	type plain Insurance
	aux := struct {
		*plain
		ExpiryDate json.RawMessage `json:"expiryDate"`
	}{plain: (*plain)(ins)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	d, err := parseDateField(aux.ExpiryDate)
	if err != nil {
		return fmt.Errorf("expiryDate: %w", err)
	}
	ins.ExpiryDate = d
	return nil
}

// parseDateField menerima "YYYY-MM-DD" atau datetime RFC3339 (diambil tanggalnya saja).
// Field tidak ada, null, atau "" -> nil.
func parseDateField(raw json.RawMessage) (*civil.Date, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("tanggal harus berupa string: %w", err)
	}
	s = string(bytes.TrimSpace([]byte(s)))
	if s == "" {
		return nil, nil
	}
	if d, err := civil.ParseDate(s); err == nil {
		return &d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("format tanggal %q tidak dikenal, gunakan YYYY-MM-DD", s)
	}
	d := civil.DateOf(t)
	return &d, nil
}
