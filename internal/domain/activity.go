package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Activity is one tracked unit of work with its planned baseline and the
// observed actuals.
type Activity struct {
	ID                string   `json:"id"`
	Name              string   `json:"activityName"`
	Discipline        string   `json:"discipline"`
	Responsible       string   `json:"responsible"`
	Priority          Priority `json:"priority"`
	Notes             string   `json:"notes"`
	Dependencies      []string `json:"dependencies"`
	RequiredResources []string `json:"requiredResources"`
	DocumentLink      string   `json:"documentLink"`

	// Schedule
	PlannedStart *Date `json:"plannedStartDate,omitempty"`
	PlannedEnd   *Date `json:"plannedEndDate,omitempty"`
	ActualStart  *Date `json:"actualStartDate,omitempty"`
	ActualEnd    *Date `json:"actualEndDate,omitempty"`

	PlannedStatus string `json:"plannedStatus"`
	ActualStatus  string `json:"actualStatus"`

	// Financial amounts; nil means "not recorded", which is distinct from 0.
	PlannedValue *float64 `json:"plannedValue"`
	ActualValue  *float64 `json:"actualValue"`
	ActualCost   *float64 `json:"actualCost"`

	CompletionPercent float64 `json:"completionPercent"`
	AssociatedRisk    string  `json:"associatedRisk"`
	LastUpdated       *Date   `json:"lastUpdatedDate,omitempty"`
}

// IsCompleted reports whether the actual status is the built-in Completed label.
func (a *Activity) IsCompleted() bool {
	return a.ActualStatus == StatusCompleted
}

// ReferenceDate is the date used by date-range filtering: the actual start
// when recorded, otherwise the planned start.
func (a *Activity) ReferenceDate() *Date {
	return CoalesceDate(a.ActualStart, a.PlannedStart)
}

// Clone returns a deep copy so callers can hand out activities without
// sharing slices or pointer fields.
func (a Activity) Clone() Activity {
	c := a
	c.Dependencies = slices.Clone(a.Dependencies)
	c.RequiredResources = slices.Clone(a.RequiredResources)
	c.PlannedStart = cloneDate(a.PlannedStart)
	c.PlannedEnd = cloneDate(a.PlannedEnd)
	c.ActualStart = cloneDate(a.ActualStart)
	c.ActualEnd = cloneDate(a.ActualEnd)
	c.LastUpdated = cloneDate(a.LastUpdated)
	c.PlannedValue = cloneFloat(a.PlannedValue)
	c.ActualValue = cloneFloat(a.ActualValue)
	c.ActualCost = cloneFloat(a.ActualCost)
	return c
}

// SearchFields returns the string form of every field, in declaration order.
// Absent optional values contribute an empty string; lists are joined with
// commas and numbers use their shortest decimal form.
func (a *Activity) SearchFields() []string {
	return []string{
		a.ID,
		a.Name,
		a.Discipline,
		a.Responsible,
		string(a.Priority),
		a.Notes,
		strings.Join(a.Dependencies, ","),
		strings.Join(a.RequiredResources, ","),
		a.DocumentLink,
		FormatOptionalDate(a.PlannedStart),
		FormatOptionalDate(a.PlannedEnd),
		FormatOptionalDate(a.ActualStart),
		FormatOptionalDate(a.ActualEnd),
		a.PlannedStatus,
		a.ActualStatus,
		formatOptionalFloat(a.PlannedValue),
		formatOptionalFloat(a.ActualValue),
		formatOptionalFloat(a.ActualCost),
		strconv.FormatFloat(a.CompletionPercent, 'f', -1, 64),
		a.AssociatedRisk,
		FormatOptionalDate(a.LastUpdated),
	}
}

// CloneActivities deep-copies a slice of activities.
func CloneActivities(in []Activity) []Activity {
	if in == nil {
		return nil
	}
	out := make([]Activity, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// DerivedActivity is an Activity plus the schedule metrics computed for the
// current run. It is rebuilt on every pipeline run and never stored.
type DerivedActivity struct {
	Activity
	OverdueDays   int `json:"overdueDays"`
	RemainingDays int `json:"remainingDays"`
}

// TaxonomyEntry is a user-defined status or risk label with its badge color.
type TaxonomyEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func cloneDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
