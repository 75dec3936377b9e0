package utils

import (
	"fmt"
	"strconv"
)

// ParseID mengubah parameter URL (":id") menjadi uint64, 0 dianggap tidak valid
func ParseID(str string) (uint64, error) {
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil || val == 0 {
		return 0, fmt.Errorf("id %q tidak valid", str)
	}
	return val, nil
}

// QueryInt membaca angka positif dari query string, fallback ke def, dibatasi max (0 = tanpa batas)
func QueryInt(str string, def, max int) int {
	val, err := strconv.Atoi(str)
	if err != nil || val < 1 {
		return def
	}
	if max > 0 && val > max {
		return max
	}
	return val
}
