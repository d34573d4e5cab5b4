package primary

import (
	"context"

	"github.com/example/testdeck/internal/core/report"
)

// ReportService defines the primary port for project reports.
type ReportService interface {
	// BuildReport aggregates a project's test cases and, unless
	// statsOnly is set, requests a narrative from the completion
	// endpoint. Defect metrics are blended in when a defect source is
	// configured.
	BuildReport(ctx context.Context, req ReportRequest) (*Report, error)
}

// ReportRequest carries the inputs for report assembly.
type ReportRequest struct {
	ProjectID string
	StatsOnly bool // skip the narrative call; works without LLM settings
}

// Report is the assembled project report.
type Report struct {
	ProjectID string
	Stats     report.Stats
	Defects   *report.DefectMetrics // nil when no defect source is configured
	Narrative string                // empty when StatsOnly
}
