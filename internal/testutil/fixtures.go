package testutil

import (
	"time"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/google/uuid"
)

// Today is the fixed reference date used by fixtures and engine tests.
var Today = domain.NewDate(2024, time.March, 15)

// DaysFromToday returns a pointer to Today shifted by n days.
func DaysFromToday(n int) *domain.Date {
	d := Today.AddDays(n)
	return &d
}

// Date parses YYYY-MM-DD and panics on malformed test input.
func Date(s string) *domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func Money(v float64) *float64 { return &v }

// Activity options
type ActivityOption func(*domain.Activity)

func WithID(id string) ActivityOption {
	return func(a *domain.Activity) { a.ID = id }
}

func WithDiscipline(d string) ActivityOption {
	return func(a *domain.Activity) { a.Discipline = d }
}

func WithResponsible(r string) ActivityOption {
	return func(a *domain.Activity) { a.Responsible = r }
}

func WithPriority(p domain.Priority) ActivityOption {
	return func(a *domain.Activity) { a.Priority = p }
}

func WithStatus(actual string) ActivityOption {
	return func(a *domain.Activity) { a.ActualStatus = actual }
}

func WithPlannedStatus(planned string) ActivityOption {
	return func(a *domain.Activity) { a.PlannedStatus = planned }
}

func WithRisk(r string) ActivityOption {
	return func(a *domain.Activity) { a.AssociatedRisk = r }
}

func WithPlannedStart(d *domain.Date) ActivityOption {
	return func(a *domain.Activity) { a.PlannedStart = d }
}

func WithPlannedEnd(d *domain.Date) ActivityOption {
	return func(a *domain.Activity) { a.PlannedEnd = d }
}

func WithActualStart(d *domain.Date) ActivityOption {
	return func(a *domain.Activity) { a.ActualStart = d }
}

func WithActualEnd(d *domain.Date) ActivityOption {
	return func(a *domain.Activity) { a.ActualEnd = d }
}

func WithValues(planned, actual *float64) ActivityOption {
	return func(a *domain.Activity) {
		a.PlannedValue = planned
		a.ActualValue = actual
	}
}

func WithActualCost(v float64) ActivityOption {
	return func(a *domain.Activity) { a.ActualCost = &v }
}

func WithCompletion(pct float64) ActivityOption {
	return func(a *domain.Activity) { a.CompletionPercent = pct }
}

func WithNotes(n string) ActivityOption {
	return func(a *domain.Activity) { a.Notes = n }
}

func WithResources(r ...string) ActivityOption {
	return func(a *domain.Activity) { a.RequiredResources = r }
}

func WithDependencies(d ...string) ActivityOption {
	return func(a *domain.Activity) { a.Dependencies = d }
}

// NewTestActivity returns a Medium priority, Not Started activity with a
// fresh ID. Options are applied in order.
func NewTestActivity(name string, opts ...ActivityOption) domain.Activity {
	a := domain.Activity{
		ID:             uuid.New().String(),
		Name:           name,
		Discipline:     "Civil",
		Responsible:    "Ana",
		Priority:       domain.PriorityMedium,
		PlannedStatus:  domain.StatusNotStarted,
		ActualStatus:   domain.StatusNotStarted,
		AssociatedRisk: domain.RiskLow,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewTestDashboard returns a dashboard with a fresh ID.
func NewTestDashboard(name string) *domain.Dashboard {
	return &domain.Dashboard{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
