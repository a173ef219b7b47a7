package engine

import (
	"testing"

	"github.com/alexanderramin/tracksheet/internal/domain"
	tu "github.com/alexanderramin/tracksheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioSnapshot() Snapshot {
	return Snapshot{
		Activities: []domain.Activity{
			tu.NewTestActivity("A", tu.WithStatus(domain.StatusDelayed), tu.WithPlannedEnd(tu.DaysFromToday(-5))),
			tu.NewTestActivity("B", tu.WithStatus(domain.StatusNotStarted), tu.WithPlannedEnd(tu.DaysFromToday(3))),
			tu.NewTestActivity("C",
				tu.WithStatus(domain.StatusCompleted),
				tu.WithPlannedEnd(tu.Date("2024-01-10")),
				tu.WithActualEnd(tu.Date("2024-01-12")),
			),
		},
		CustomStatuses: []domain.TaxonomyEntry{{Name: "Completed"}, {Name: "Blocked"}},
		Criteria:       domain.NewFilterCriteria(),
		Today:          tu.Today,
	}
}

func TestRun_Scenario(t *testing.T) {
	r := Run(scenarioSnapshot())

	require.Len(t, r.Filtered, 3)
	assert.Equal(t, 5, r.Filtered[0].OverdueDays)
	assert.Equal(t, 0, r.Filtered[0].RemainingDays)
	assert.Equal(t, 0, r.Filtered[1].OverdueDays)
	assert.Equal(t, 3, r.Filtered[1].RemainingDays)
	assert.Equal(t, 2, r.Filtered[2].OverdueDays)
	assert.Equal(t, 0, r.Filtered[2].RemainingDays)

	assert.Equal(t, []string{"Completed", "In Progress", "Delayed", "Not Started", "Blocked"}, r.Statuses)
	assert.Equal(t, []string{"High", "Medium", "Low"}, r.Risks)

	counts := map[string]int{}
	for _, b := range r.RealStatus {
		counts[b.Status] = b.Count
	}
	assert.Equal(t, map[string]int{
		"Completed": 1, "In Progress": 0, "Delayed": 1, "Not Started": 1, "Blocked": 0,
	}, counts)
}

func TestRun_FilterFeedsAggregates(t *testing.T) {
	s := scenarioSnapshot()
	s.Criteria.StatusFilter = domain.StatusDelayed

	r := Run(s)

	require.Len(t, r.Filtered, 1)
	assert.Equal(t, "A", r.Filtered[0].Name)
	assert.Equal(t, 1, r.Totals.TotalActivities)
	require.Len(t, r.CompletionByDiscipline, 1)
	assert.Equal(t, 0.0, r.CompletionByDiscipline[0].Percent)
	require.Len(t, r.Overdue, 1)
	assert.Equal(t, 1, r.Matrix.MaxCount)
}

func TestRun_EmptySnapshot(t *testing.T) {
	r := Run(Snapshot{Criteria: domain.NewFilterCriteria(), Today: tu.Today})

	assert.Empty(t, r.Filtered)
	assert.Equal(t, 0.0, r.Totals.OverallCompletionPct)
	assert.Equal(t, 0, r.Matrix.MaxCount)
	assert.Len(t, r.RealStatus, 4)
}

func TestRun_IsIdempotentAndDoesNotMutateInput(t *testing.T) {
	s := scenarioSnapshot()
	before := domain.CloneActivities(s.Activities)

	first := Run(s)
	second := Run(s)

	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Activities)
}
