package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/example/testdeck/internal/core/prompt"
	"github.com/example/testdeck/internal/core/report"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	testCaseRepo secondary.TestCaseRepository
	usageRepo    secondary.UsageLogRepository
	defects      secondary.DefectSource
	completion   secondary.CompletionClient
	provider     string
	logger       *slog.Logger
}

// NewReportService creates a new ReportService with injected
// dependencies. defects and completion may be nil; the report then
// carries no defect metrics and narrative requests fail with a
// configuration error.
func NewReportService(
	projectRepo secondary.ProjectRepository,
	testCaseRepo secondary.TestCaseRepository,
	usageRepo secondary.UsageLogRepository,
	defects secondary.DefectSource,
	completion secondary.CompletionClient,
	provider string,
	logger *slog.Logger,
) *ReportServiceImpl {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ReportServiceImpl{
		projectRepo:  projectRepo,
		testCaseRepo: testCaseRepo,
		usageRepo:    usageRepo,
		defects:      defects,
		completion:   completion,
		provider:     provider,
		logger:       logger,
	}
}

// BuildReport aggregates a project's test cases and, unless StatsOnly is
// set, requests a narrative from the completion endpoint.
func (s *ReportServiceImpl) BuildReport(ctx context.Context, req primary.ReportRequest) (*primary.Report, error) {
	if !req.StatsOnly && s.completion == nil {
		return nil, fmt.Errorf("llm provider not configured: enable it in providers.yaml or use the stats-only report")
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	records, err := s.testCaseRepo.List(ctx, secondary.TestCaseFilters{ProjectID: req.ProjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to list test cases: %w", err)
	}

	cases := make([]report.CaseSummary, len(records))
	for i, r := range records {
		cases[i] = report.CaseSummary{Title: r.Title, Status: r.Status, Priority: r.Priority}
	}

	out := &primary.Report{
		ProjectID: req.ProjectID,
		Stats:     report.Compute(cases),
	}

	// Defect metrics are an enrichment: a failing defect source degrades
	// the report, it does not fail it.
	if s.defects != nil {
		metrics, err := s.defects.FetchDefectMetrics(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "defect metrics skipped", "error", err)
		} else {
			out.Defects = metrics
		}
	}

	if req.StatsOnly {
		return out, nil
	}

	userMsg := prompt.BuildReport(project.Name, cases, out.Stats, out.Defects)

	start := time.Now()
	result, err := s.completion.Complete(ctx, secondary.CompletionRequest{
		System: prompt.ReportSystem,
		User:   userMsg,
	})
	latency := time.Since(start).Milliseconds()

	s.recordUsage(ctx, result, latency, err == nil)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	out.Narrative = result.Text
	return out, nil
}

func (s *ReportServiceImpl) recordUsage(ctx context.Context, result *secondary.CompletionResult, latencyMS int64, success bool) {
	entry := &secondary.UsageRecord{
		Provider:  s.provider,
		Operation: "build_report",
		LatencyMS: latencyMS,
		Success:   success,
	}
	if result != nil {
		entry.Model = result.Model
		entry.PromptTokens = result.PromptTokens
		entry.CompletionTokens = result.CompletionTokens
		entry.CostEstimate = float64(result.PromptTokens+result.CompletionTokens) / 1000 * costPer1KTokens
	}

	id, err := s.usageRepo.GetNextID(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "usage log skipped", "error", err)
		return
	}
	entry.ID = id

	if err := s.usageRepo.Create(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "usage log skipped", "error", err)
	}
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
