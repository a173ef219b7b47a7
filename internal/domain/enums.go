package domain

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityHigh: true, PriorityMedium: true, PriorityLow: true,
}

// Built-in status labels. They can never be removed or renamed.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusDelayed    = "Delayed"
	StatusNotStarted = "Not Started"
)

// Built-in risk labels.
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// FilterAll is the wildcard value for the status and responsible filters.
const FilterAll = "All"

// BuiltInStatuses returns the fixed status labels in display order.
func BuiltInStatuses() []string {
	return []string{StatusCompleted, StatusInProgress, StatusDelayed, StatusNotStarted}
}

// BuiltInRisks returns the fixed risk labels in display order.
func BuiltInRisks() []string {
	return []string{RiskHigh, RiskMedium, RiskLow}
}

type TaxonomyKind string

const (
	TaxonomyStatus TaxonomyKind = "status"
	TaxonomyRisk   TaxonomyKind = "risk"
)

// ValidTaxonomyKinds is the canonical set of taxonomy kind strings.
var ValidTaxonomyKinds = map[TaxonomyKind]bool{
	TaxonomyStatus: true, TaxonomyRisk: true,
}

// BuiltIns returns the fixed labels for the taxonomy kind.
func (k TaxonomyKind) BuiltIns() []string {
	if k == TaxonomyRisk {
		return BuiltInRisks()
	}
	return BuiltInStatuses()
}
