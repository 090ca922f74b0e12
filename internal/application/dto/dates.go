package dto

import (
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// ParseDate interpreta un parámetro de fecha (YYYY-MM-DD o RFC 3339). Vacío devuelve nil.
// Con endOfDay, una fecha sin hora cubre el día completo (23:59:59.999999999 UTC).
func ParseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("date invalide %q (format attendu YYYY-MM-DD ou RFC 3339)", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// FormatDay formatea una fecha como YYYY-MM-DD (UTC).
func FormatDay(t time.Time) string {
	return t.UTC().Format(dateOnly)
}
