// Package report contains the pure aggregation logic for project
// reports: counts by status and priority and the pass rate.
package report

import (
	"math"

	"github.com/example/testdeck/internal/core/testcase"
)

// CaseSummary is the slice of a test case the report needs.
type CaseSummary struct {
	Title    string
	Status   string
	Priority string
}

// DefectMetrics carries externally fetched defect counts, blended into
// the report when present.
type DefectMetrics struct {
	Open     int
	Resolved int
}

// Stats holds the aggregate figures for a project's test cases.
type Stats struct {
	Total      int
	Passed     int
	Failed     int
	Blocked    int
	NotRun     int
	ByPriority map[string]int
	PassRate   float64 // percentage rounded to one decimal place; 0 when Total is 0
}

// Compute aggregates test case summaries into Stats. PassRate is
// passed/total*100 rounded to one decimal place and exactly 0 when there
// are no cases (never NaN).
func Compute(cases []CaseSummary) Stats {
	stats := Stats{ByPriority: map[string]int{}}

	for _, c := range cases {
		stats.Total++
		stats.ByPriority[c.Priority]++
		switch c.Status {
		case testcase.StatusPassed:
			stats.Passed++
		case testcase.StatusFailed:
			stats.Failed++
		case testcase.StatusBlocked:
			stats.Blocked++
		default:
			stats.NotRun++
		}
	}

	if stats.Total > 0 {
		stats.PassRate = math.Round(float64(stats.Passed)/float64(stats.Total)*1000) / 10
	}

	return stats
}
