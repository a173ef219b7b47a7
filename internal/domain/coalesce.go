package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FloatOrZero returns *p, or 0 when p is nil. Absent money amounts count as
// zero in sums while staying distinguishable from an explicit zero on the record.
func FloatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// CoalesceDate returns the first non-nil date.
func CoalesceDate(dates ...*Date) *Date {
	for _, d := range dates {
		if d != nil {
			return d
		}
	}
	return nil
}
