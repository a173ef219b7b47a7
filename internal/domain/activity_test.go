package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivity_CloneIsDeep(t *testing.T) {
	start := NewDate(2024, 1, 1)
	value := 100.0
	orig := Activity{
		ID:           "a1",
		Dependencies: []string{"x"},
		PlannedStart: &start,
		PlannedValue: &value,
	}

	c := orig.Clone()
	c.Dependencies[0] = "changed"
	*c.PlannedStart = NewDate(2030, 1, 1)
	*c.PlannedValue = 1

	assert.Equal(t, "x", orig.Dependencies[0])
	assert.Equal(t, "2024-01-01", orig.PlannedStart.String())
	assert.Equal(t, 100.0, *orig.PlannedValue)
}

func TestActivity_ReferenceDatePrefersActualStart(t *testing.T) {
	planned := NewDate(2024, 1, 1)
	actual := NewDate(2024, 1, 5)

	a := Activity{PlannedStart: &planned}
	assert.Equal(t, "2024-01-01", a.ReferenceDate().String())

	a.ActualStart = &actual
	assert.Equal(t, "2024-01-05", a.ReferenceDate().String())

	assert.Nil(t, (&Activity{}).ReferenceDate())
}

func TestActivity_SearchFieldsStringifiesNumbersAndLists(t *testing.T) {
	v := 1500.5
	a := Activity{
		Name:              "Pour slab",
		RequiredResources: []string{"crane", "mixer"},
		PlannedValue:      &v,
		CompletionPercent: 40,
	}
	fields := a.SearchFields()
	assert.Contains(t, fields, "Pour slab")
	assert.Contains(t, fields, "crane,mixer")
	assert.Contains(t, fields, "1500.5")
	assert.Contains(t, fields, "40")
}

func TestTaxonomyKind_BuiltIns(t *testing.T) {
	assert.Equal(t, []string{"Completed", "In Progress", "Delayed", "Not Started"}, TaxonomyStatus.BuiltIns())
	assert.Equal(t, []string{"High", "Medium", "Low"}, TaxonomyRisk.BuiltIns())
}
