// Package wire provides dependency injection for the testdeck
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/example/testdeck/internal/adapters/azure"
	"github.com/example/testdeck/internal/adapters/jira"
	"github.com/example/testdeck/internal/adapters/llm"
	"github.com/example/testdeck/internal/adapters/sqlite"
	"github.com/example/testdeck/internal/app"
	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/db"
	"github.com/example/testdeck/internal/ports/primary"
	"github.com/example/testdeck/internal/ports/secondary"
)

var (
	projectService    primary.ProjectService
	storyService      primary.StoryService
	testCaseService   primary.TestCaseService
	syncService       primary.SyncService
	generationService primary.GenerationService
	reportService     primary.ReportService
	usageService      primary.UsageService
	once              sync.Once
)

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// StoryService returns the singleton StoryService instance.
func StoryService() primary.StoryService {
	once.Do(initServices)
	return storyService
}

// TestCaseService returns the singleton TestCaseService instance.
func TestCaseService() primary.TestCaseService {
	once.Do(initServices)
	return testCaseService
}

// SyncService returns the singleton SyncService instance.
func SyncService() primary.SyncService {
	once.Do(initServices)
	return syncService
}

// GenerationService returns the singleton GenerationService instance.
func GenerationService() primary.GenerationService {
	once.Do(initServices)
	return generationService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// UsageService returns the singleton UsageService instance.
func UsageService() primary.UsageService {
	once.Do(initServices)
	return usageService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Repository adapters (secondary ports) with injected DB
	projectRepo := sqlite.NewProjectRepository(database)
	storyRepo := sqlite.NewStoryRepository(database)
	testCaseRepo := sqlite.NewTestCaseRepository(database)
	usageRepo := sqlite.NewUsageLogRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	// Provider adapters from providers.yaml; missing file means all
	// providers disabled.
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("failed to resolve home directory: %v", err)
	}
	providers, err := config.LoadProviders(home)
	if err != nil {
		log.Fatalf("failed to load providers config: %v", err)
	}

	var sources []secondary.StorySource
	var defectSource secondary.DefectSource

	if providers.Jira.Enabled {
		jiraClient, err := jira.New(providers.Jira, jira.WithLogger(logger))
		if err != nil {
			log.Fatalf("failed to create jira client: %v", err)
		}
		sources = append(sources, jiraClient)
	}

	if providers.Azure.Enabled {
		azureClient, err := azure.New(providers.Azure, azure.WithLogger(logger))
		if err != nil {
			log.Fatalf("failed to create azure client: %v", err)
		}
		sources = append(sources, azureClient)
		defectSource = azureClient
	}

	var completion secondary.CompletionClient
	llmProvider := ""
	if providers.LLM.Enabled {
		llmClient, err := llm.New(providers.LLM, llm.WithLogger(logger))
		if err != nil {
			log.Fatalf("failed to create llm client: %v", err)
		}
		completion = llmClient
		if providers.LLM.Auth == config.LLMAuthAPIKey {
			llmProvider = "azure-openai"
		} else {
			llmProvider = "openai"
		}
	}

	// Services (primary port implementations)
	projectService = app.NewProjectService(projectRepo, logWriter)
	storyService = app.NewStoryService(storyRepo, testCaseRepo, logWriter)
	testCaseService = app.NewTestCaseService(testCaseRepo, logWriter)
	syncService = app.NewSyncService(storyRepo, sources, logWriter, logger)
	generationService = app.NewGenerationService(storyRepo, testCaseRepo, usageRepo, completion, llmProvider, logWriter, logger)
	reportService = app.NewReportService(projectRepo, testCaseRepo, usageRepo, defectSource, completion, llmProvider, logger)
	usageService = app.NewUsageService(usageRepo)
}
