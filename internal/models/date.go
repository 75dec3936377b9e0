package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/datatypes"
)

// Date kolom DATE yang di JSON tampil sebagai "YYYY-MM-DD".
// Ditulis ke database sebagai string tanggal sehingga tidak bergeser oleh
// zona waktu host maupun parameter loc di DSN.
type Date struct {
	civil.Date
}

func NewDate(d civil.Date) Date { return Date{Date: d} }

// DatePtr nil tetap nil (kolom NULL)
func DatePtr(d *civil.Date) *Date {
	if d == nil {
		return nil
	}
	return &Date{Date: *d}
}

func (d Date) Value() (driver.Value, error) {
	return d.Date.String(), nil
}

// Scan time.Time dibaca tanggal kalendernya di zona waktu dari driver
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Date = civil.DateOf(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	}
	var dd datatypes.Date
	if err := dd.Scan(value); err != nil {
		return err
	}
	d.Date = civil.DateOf(time.Time(dd))
	return nil
}

func (d *Date) parse(s string) error {
	if len(s) > 10 {
		s = s[:10] // "YYYY-MM-DD hh:mm:ss" dari driver tanpa parseTime
	}
	cd, err := civil.ParseDate(s)
	if err != nil {
		return fmt.Errorf("models.Date: %w", err)
	}
	d.Date = cd
	return nil
}

func (Date) GormDataType() string {
	return "date"
}

// Civil nil-safe
func (d *Date) Civil() *civil.Date {
	if d == nil {
		return nil
	}
	c := d.Date
	return &c
}
