// Package taxonomy merges the built-in status and risk labels with the
// user-defined entries of a dashboard.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tracksheet/internal/domain"
)

// Resolve returns built-ins in their fixed order followed by custom names in
// insertion order. Custom names already present are dropped.
func Resolve(builtIns []string, customs []domain.TaxonomyEntry) []string {
	return resolveSet(builtIns, customs).Values()
}

// ResolveKind resolves customs against the built-ins of kind.
func ResolveKind(kind domain.TaxonomyKind, customs []domain.TaxonomyEntry) []string {
	return Resolve(kind.BuiltIns(), customs)
}

func resolveSet(builtIns []string, customs []domain.TaxonomyEntry) *OrderedSet {
	set := NewOrderedSet(builtIns...)
	for _, c := range customs {
		set.Add(c.Name)
	}
	return set
}

// ErrorCode classifies a rejected taxonomy entry.
type ErrorCode string

const (
	CodeBlankName     ErrorCode = "blank_name"
	CodeDuplicateName ErrorCode = "duplicate_name"
)

// Error is a user-facing rejection of a new taxonomy entry.
type Error struct {
	Code    ErrorCode
	Kind    domain.TaxonomyKind
	Name    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidateNew checks a candidate custom entry against the resolved union of
// kind. It returns the trimmed name on success.
func ValidateNew(kind domain.TaxonomyKind, customs []domain.TaxonomyEntry, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &Error{
			Code:    CodeBlankName,
			Kind:    kind,
			Message: fmt.Sprintf("%s name cannot be empty", kindLabel(kind)),
		}
	}
	if resolveSet(kind.BuiltIns(), customs).Contains(trimmed) {
		return "", &Error{
			Code:    CodeDuplicateName,
			Kind:    kind,
			Name:    trimmed,
			Message: fmt.Sprintf("%s %q already exists", kindLabel(kind), trimmed),
		}
	}
	return trimmed, nil
}

// Add validates entry and returns a new slice with it appended. customs is
// never modified.
func Add(kind domain.TaxonomyKind, customs []domain.TaxonomyEntry, entry domain.TaxonomyEntry) ([]domain.TaxonomyEntry, error) {
	name, err := ValidateNew(kind, customs, entry.Name)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TaxonomyEntry, 0, len(customs)+1)
	out = append(out, customs...)
	out = append(out, domain.TaxonomyEntry{Name: name, Color: entry.Color})
	return out, nil
}

func kindLabel(kind domain.TaxonomyKind) string {
	if kind == domain.TaxonomyRisk {
		return "Risk"
	}
	return "Status"
}
