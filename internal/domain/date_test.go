package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, "2024-01-10", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10/01/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestParseOptionalDate_DegradesToAbsent(t *testing.T) {
	assert.Nil(t, ParseOptionalDate(""))
	assert.Nil(t, ParseOptionalDate("   "))
	assert.Nil(t, ParseOptionalDate("not-a-date"))
	require.NotNil(t, ParseOptionalDate("2024-02-29"))
}

func TestDaysUntil(t *testing.T) {
	a := NewDate(2024, 1, 10)
	b := NewDate(2024, 1, 12)
	assert.Equal(t, 2, a.DaysUntil(b))
	assert.Equal(t, -2, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestDaysUntil_AcrossDSTAndLeapYear(t *testing.T) {
	// 2024-03-10 is a DST switch in many zones; dates are civil so no drift.
	assert.Equal(t, 1, NewDate(2024, 3, 9).DaysUntil(NewDate(2024, 3, 10)))
	assert.Equal(t, 366, NewDate(2024, 1, 1).DaysUntil(NewDate(2025, 1, 1)))
}

func TestDateOf_UsesCivilDateOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	late := time.Date(2024, 5, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-05-01", DateOf(late).String())
}

func TestDate_JSONRoundTripsAsString(t *testing.T) {
	d := NewDate(2024, 7, 4)
	out, err := json.Marshal(struct {
		D *Date `json:"d"`
	}{D: &d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-07-04"}`, string(out))

	var in struct {
		D *Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal(out, &in))
	require.NotNil(t, in.D)
	assert.True(t, d.Equal(*in.D))
}
