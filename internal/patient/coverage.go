package patient

import "cloud.google.com/go/civil"

// Coverage status masa berlaku kartu penjamin
type Coverage string

const (
	CoverageActive   Coverage = "active"
	CoverageExpiring Coverage = "expiring"
	CoverageExpired  Coverage = "expired"
	CoverageOpen     Coverage = "open" // tanpa tanggal kadaluarsa
)

// DefaultExpiryWindow jumlah hari ke depan yang dianggap "segera habis"
const DefaultExpiryWindow = 30

// CoverageStatus: expired kalau sebelum hari ini, expiring kalau dalam windowDays hari
// ke depan (termasuk hari ini dan hari ke-windowDays).
func CoverageStatus(expiry *civil.Date, today civil.Date, windowDays int) Coverage {
	if expiry == nil {
		return CoverageOpen
	}
	if expiry.Before(today) {
		return CoverageExpired
	}
	if !expiry.After(today.AddDays(windowDays)) {
		return CoverageExpiring
	}
	return CoverageActive
}

// DaysLeft sisa hari sampai kadaluarsa, negatif kalau sudah lewat.
func DaysLeft(expiry, today civil.Date) int {
	return expiry.DaysSince(today)
}
