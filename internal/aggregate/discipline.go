package aggregate

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
)

type DisciplineCost struct {
	Discipline string  `json:"discipline"`
	Planned    float64 `json:"planned"`
	Actual     float64 `json:"actual"`
	Deviation  float64 `json:"deviation"`
}

// CostByDiscipline sums planned and actual value per discipline, in order of
// first appearance. Absent amounts count as 0.
func CostByDiscipline(derived []domain.DerivedActivity) []DisciplineCost {
	out := []DisciplineCost{}
	index := make(map[string]int)
	for i := range derived {
		a := &derived[i].Activity
		j, ok := index[a.Discipline]
		if !ok {
			j = len(out)
			index[a.Discipline] = j
			out = append(out, DisciplineCost{Discipline: a.Discipline})
		}
		out[j].Planned += domain.FloatOrZero(a.PlannedValue)
		out[j].Actual += domain.FloatOrZero(a.ActualValue)
	}
	for j := range out {
		out[j].Deviation = out[j].Actual - out[j].Planned
	}
	return out
}

type DisciplineCompletion struct {
	Discipline string  `json:"discipline"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percent    float64 `json:"percent"`
}

// CompletionByDiscipline reports the share of Completed activities per
// discipline. Only disciplines present in derived appear, so no group is
// ever empty.
func CompletionByDiscipline(derived []domain.DerivedActivity) []DisciplineCompletion {
	out := []DisciplineCompletion{}
	index := make(map[string]int)
	for i := range derived {
		a := &derived[i].Activity
		j, ok := index[a.Discipline]
		if !ok {
			j = len(out)
			index[a.Discipline] = j
			out = append(out, DisciplineCompletion{Discipline: a.Discipline})
		}
		out[j].Total++
		if a.IsCompleted() {
			out[j].Completed++
		}
	}
	for j := range out {
		out[j].Percent = Percent(out[j].Completed, out[j].Total)
	}
	return out
}

// Percent returns 100*part/whole, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
