package repository

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// parseNullableDate parses a stored YYYY-MM-DD value. NULL, empty and
// malformed values all load as absent.
func parseNullableDate(s sql.NullString) *domain.Date {
	if !s.Valid {
		return nil
	}
	return domain.ParseOptionalDate(s.String)
}

// nullableDateToValue returns nil (SQL NULL) for an absent date.
func nullableDateToValue(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func nullableFloatToValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// encodeList stores a string list as JSON text: a nil list as null and an
// empty one as [], so both survive a reload.
func encodeList(xs []string) string {
	b, err := json.Marshal(xs)
	if err != nil {
		return "null"
	}
	return string(b)
}

// decodeList reads a JSON text list. Malformed values load as nil.
func decodeList(s string) []string {
	var xs []string
	if err := json.Unmarshal([]byte(s), &xs); err != nil {
		return nil
	}
	return xs
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
