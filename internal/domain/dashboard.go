package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Dashboard groups one activity collection and its custom taxonomies.
type Dashboard struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateName checks that the dashboard has a usable display name.
func (d *Dashboard) ValidateName() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("dashboard name is required")
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID.
func (d *Dashboard) DisplayID() string {
	if len(d.ID) >= 8 {
		return d.ID[:8]
	}
	return d.ID
}

// DashboardState is everything persisted for one dashboard.
type DashboardState struct {
	Activities     []Activity      `json:"activities"`
	CustomStatuses []TaxonomyEntry `json:"customStatuses"`
	CustomRisks    []TaxonomyEntry `json:"customRisks"`
}

// Clone returns a deep copy of s.
func (s DashboardState) Clone() DashboardState {
	return DashboardState{
		Activities:     CloneActivities(s.Activities),
		CustomStatuses: slices.Clone(s.CustomStatuses),
		CustomRisks:    slices.Clone(s.CustomRisks),
	}
}

// Customs returns the custom entries of kind.
func (s DashboardState) Customs(kind TaxonomyKind) []TaxonomyEntry {
	if kind == TaxonomyRisk {
		return s.CustomRisks
	}
	return s.CustomStatuses
}
