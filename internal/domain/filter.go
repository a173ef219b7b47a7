package domain

// FilterCriteria is the transient UI-session filter state.
type FilterCriteria struct {
	SearchTerm        string `json:"searchTerm"`
	StatusFilter      string `json:"statusFilter"`
	ResponsibleFilter string `json:"responsibleFilter"`
	StartDate         *Date  `json:"startDate,omitempty"`
	EndDate           *Date  `json:"endDate,omitempty"`
}

// NewFilterCriteria returns criteria that match every activity.
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{
		StatusFilter:      FilterAll,
		ResponsibleFilter: FilterAll,
	}
}

// HasDateRange reports whether both bounds are set. A one-sided range does
// not filter anything.
func (c FilterCriteria) HasDateRange() bool {
	return c.StartDate != nil && c.EndDate != nil
}
