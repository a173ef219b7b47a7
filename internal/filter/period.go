package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Period is a named date-range preset relative to today.
type Period string

const (
	PeriodAll      Period = "all"
	PeriodWeek     Period = "week"
	PeriodMonth    Period = "month"
	PeriodQuarter  Period = "quarter"
	PeriodSemester Period = "semester"
	PeriodYear     Period = "year"
)

// ValidPeriods is the canonical set of accepted period strings.
var ValidPeriods = map[Period]bool{
	PeriodAll: true, PeriodWeek: true, PeriodMonth: true,
	PeriodQuarter: true, PeriodSemester: true, PeriodYear: true,
}

var ErrUnknownPeriod = errors.New("unknown period")

// PeriodRange returns the inclusive bounds of p around today. PeriodAll and
// the empty period yield nil bounds, which disables date filtering.
func PeriodRange(p Period, today domain.Date) (start, end *domain.Date, err error) {
	var s, e domain.Date
	switch p {
	case PeriodAll, "":
		return nil, nil, nil
	case PeriodWeek:
		s = today.AddDays(-int(today.Weekday()))
		e = s.AddDays(6)
	case PeriodMonth:
		s = domain.NewDate(today.Year(), today.Month(), 1)
		e = domain.NewDate(today.Year(), today.Month()+1, 0)
	case PeriodQuarter:
		first := time.Month((int(today.Month())-1)/3*3 + 1)
		s = domain.NewDate(today.Year(), first, 1)
		e = domain.NewDate(today.Year(), first+3, 0)
	case PeriodSemester:
		first := time.January
		if today.Month() > time.June {
			first = time.July
		}
		s = domain.NewDate(today.Year(), first, 1)
		e = domain.NewDate(today.Year(), first+6, 0)
	case PeriodYear:
		s = domain.NewDate(today.Year(), time.January, 1)
		e = domain.NewDate(today.Year(), time.December, 31)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, p)
	}
	return &s, &e, nil
}
