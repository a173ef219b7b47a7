// Package aggregate builds the summary views of a report from the derived
// activity set. Every function here is pure and returns fresh values.
package aggregate

import (
	"github.com/alexanderramin/tracksheet/internal/domain"
)

// StatusSelector picks which status of an activity a summary counts.
type StatusSelector func(a *domain.Activity) string

func PlannedStatus(a *domain.Activity) string { return a.PlannedStatus }

func ActualStatus(a *domain.Activity) string { return a.ActualStatus }

type StatusBucket struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// StatusSummary counts activities per resolved status label, in label order.
// Every label gets a bucket, even when empty. Statuses outside labels are
// not counted.
func StatusSummary(derived []domain.DerivedActivity, labels []string, sel StatusSelector) []StatusBucket {
	buckets := make([]StatusBucket, len(labels))
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		buckets[i] = StatusBucket{Status: l}
		if _, dup := index[l]; !dup {
			index[l] = i
		}
	}
	for i := range derived {
		if j, ok := index[sel(&derived[i].Activity)]; ok {
			buckets[j].Count++
		}
	}
	return buckets
}

// StatusRow pairs the planned and real counts of one status label.
type StatusRow struct {
	Status  string `json:"status"`
	Planned int    `json:"planned"`
	Real    int    `json:"real"`
}

// StatusComparison zips the planned and real summaries by label order.
func StatusComparison(planned, real []StatusBucket) []StatusRow {
	rows := make([]StatusRow, len(planned))
	for i, p := range planned {
		rows[i] = StatusRow{Status: p.Status, Planned: p.Count}
		if i < len(real) && real[i].Status == p.Status {
			rows[i].Real = real[i].Count
		}
	}
	return rows
}

// BucketTotal sums the counts of buckets.
func BucketTotal(buckets []StatusBucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}
