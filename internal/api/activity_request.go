package api

import "github.com/alexanderramin/tracksheet/internal/domain"

// activityRequest is the body of an activity create or update. Dates arrive as
// text so a blank or malformed value loads as absent instead of rejecting the
// record.
type activityRequest struct {
	Name              string   `json:"activityName"`
	Discipline        string   `json:"discipline"`
	Responsible       string   `json:"responsible"`
	Priority          string   `json:"priority"`
	Notes             string   `json:"notes"`
	Dependencies      []string `json:"dependencies"`
	RequiredResources []string `json:"requiredResources"`
	DocumentLink      string   `json:"documentLink"`

	PlannedStart string `json:"plannedStartDate"`
	PlannedEnd   string `json:"plannedEndDate"`
	ActualStart  string `json:"actualStartDate"`
	ActualEnd    string `json:"actualEndDate"`
	LastUpdated  string `json:"lastUpdatedDate"`

	PlannedStatus string `json:"plannedStatus"`
	ActualStatus  string `json:"actualStatus"`

	PlannedValue *float64 `json:"plannedValue"`
	ActualValue  *float64 `json:"actualValue"`
	ActualCost   *float64 `json:"actualCost"`

	CompletionPercent float64 `json:"completionPercent"`
	AssociatedRisk    string  `json:"associatedRisk"`
}

func (req activityRequest) toActivity(id string) domain.Activity {
	return domain.Activity{
		ID:                id,
		Name:              req.Name,
		Discipline:        req.Discipline,
		Responsible:       req.Responsible,
		Priority:          domain.Priority(req.Priority),
		Notes:             req.Notes,
		Dependencies:      req.Dependencies,
		RequiredResources: req.RequiredResources,
		DocumentLink:      req.DocumentLink,
		PlannedStart:      domain.ParseOptionalDate(req.PlannedStart),
		PlannedEnd:        domain.ParseOptionalDate(req.PlannedEnd),
		ActualStart:       domain.ParseOptionalDate(req.ActualStart),
		ActualEnd:         domain.ParseOptionalDate(req.ActualEnd),
		LastUpdated:       domain.ParseOptionalDate(req.LastUpdated),
		PlannedStatus:     req.PlannedStatus,
		ActualStatus:      req.ActualStatus,
		PlannedValue:      req.PlannedValue,
		ActualValue:       req.ActualValue,
		ActualCost:        req.ActualCost,
		CompletionPercent: req.CompletionPercent,
		AssociatedRisk:    req.AssociatedRisk,
	}
}
