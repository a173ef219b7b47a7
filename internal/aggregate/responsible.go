package aggregate

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
)

type ResponsibleSummary struct {
	Responsible string `json:"responsible"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	InProgress  int    `json:"inProgress"`
	Delayed     int    `json:"delayed"`
	NotStarted  int    `json:"notStarted"`
}

// SummarizeByResponsible tallies each responsible party's activities by
// built-in actual status. Any other status counts as In Progress.
func SummarizeByResponsible(derived []domain.DerivedActivity) []ResponsibleSummary {
	out := []ResponsibleSummary{}
	index := make(map[string]int)
	for i := range derived {
		a := &derived[i].Activity
		j, ok := index[a.Responsible]
		if !ok {
			j = len(out)
			index[a.Responsible] = j
			out = append(out, ResponsibleSummary{Responsible: a.Responsible})
		}
		s := &out[j]
		s.Total++
		switch a.ActualStatus {
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusDelayed:
			s.Delayed++
		case domain.StatusNotStarted:
			s.NotStarted++
		default:
			s.InProgress++
		}
	}
	return out
}
