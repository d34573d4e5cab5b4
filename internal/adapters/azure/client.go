// Package azure fetches user stories and defect counts from an Azure
// DevOps project over the work item tracking REST API.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/core/report"
	"github.com/example/testdeck/internal/core/story"
	"github.com/example/testdeck/internal/ports/secondary"
)

const apiVersion = "7.0"

// Client is a read-only client for a single Azure DevOps project.
type Client struct {
	orgURL     string
	project    string
	pat        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the Client during construction.
type Option func(*clientConfig) error

type clientConfig struct {
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// New creates a Client from the given provider settings. The personal
// access token is sent as the basic auth password with an empty user.
func New(settings config.AzureSettings, opts ...Option) (*Client, error) {
	if settings.OrgURL == "" {
		return nil, fmt.Errorf("azure: org url is required")
	}
	if settings.Project == "" {
		return nil, fmt.Errorf("azure: project is required")
	}
	if settings.PAT == "" {
		return nil, fmt.Errorf("azure: personal access token is required")
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.timeout > 0 {
		httpClient.Timeout = cfg.timeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		orgURL:     strings.TrimSuffix(settings.OrgURL, "/"),
		project:    settings.Project,
		pat:        settings.PAT,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithTimeout sets a timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		cfg.timeout = d
		return nil
	}
}

// Name identifies this source in sync results.
func (c *Client) Name() string {
	return "azure"
}

type wiqlRequest struct {
	Query string `json:"query"`
}

type wiqlResponse struct {
	WorkItems []workItemRef `json:"workItems"`
}

type workItemRef struct {
	ID int `json:"id"`
}

type workItemBatch struct {
	Value []workItem `json:"value"`
}

type workItem struct {
	ID     int            `json:"id"`
	Fields workItemFields `json:"fields"`
}

type workItemFields struct {
	Title              string  `json:"System.Title"`
	Description        string  `json:"System.Description"`
	State              string  `json:"System.State"`
	Priority           float64 `json:"Microsoft.VSTS.Common.Priority"`
	AcceptanceCriteria string  `json:"Microsoft.VSTS.Common.AcceptanceCriteria"`
}

// FetchStories fetches up to limit story work items (User Story or
// Product Backlog Item types, covering both process templates), oldest
// first, mapped to the local story shape.
func (c *Client) FetchStories(ctx context.Context, limit int) ([]secondary.ProviderStory, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	query := "SELECT [System.Id] FROM WorkItems" +
		" WHERE [System.TeamProject] = @project" +
		" AND [System.WorkItemType] IN ('User Story', 'Product Backlog Item')" +
		" ORDER BY [System.Id] ASC"

	var wiql wiqlResponse
	if err := c.postJSON(ctx, c.wiqlURL(), "query stories", wiqlRequest{Query: query}, &wiql); err != nil {
		return nil, err
	}

	refs := wiql.WorkItems
	if len(refs) > limit {
		refs = refs[:limit]
	}
	if len(refs) == 0 {
		return []secondary.ProviderStory{}, nil
	}

	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = strconv.Itoa(ref.ID)
	}

	url := fmt.Sprintf("%s/%s/_apis/wit/workitems?ids=%s&api-version=%s",
		c.orgURL, c.project, strings.Join(ids, ","), apiVersion)

	var batch workItemBatch
	if err := c.getJSON(ctx, url, "fetch story details", &batch); err != nil {
		return nil, err
	}

	stories := make([]secondary.ProviderStory, 0, len(batch.Value))
	for _, item := range batch.Value {
		stories = append(stories, secondary.ProviderStory{
			Title:              item.Fields.Title,
			Description:        stripTags(item.Fields.Description),
			AcceptanceCriteria: stripTags(item.Fields.AcceptanceCriteria),
			Priority:           story.PriorityFromNumber(int(item.Fields.Priority)),
			Status:             story.NormalizeStatus(item.Fields.State),
		})
	}

	c.logger.InfoContext(ctx, "fetched azure stories", "project", c.project, "count", len(stories))
	return stories, nil
}

// FetchDefectMetrics returns current bug counts split into open and
// resolved groups.
func (c *Client) FetchDefectMetrics(ctx context.Context) (*report.DefectMetrics, error) {
	resolvedStates := "('Resolved', 'Closed', 'Done')"

	open, err := c.countBugs(ctx, "count open bugs",
		"[System.State] NOT IN "+resolvedStates)
	if err != nil {
		return nil, err
	}

	resolved, err := c.countBugs(ctx, "count resolved bugs",
		"[System.State] IN "+resolvedStates)
	if err != nil {
		return nil, err
	}

	return &report.DefectMetrics{Open: open, Resolved: resolved}, nil
}

func (c *Client) countBugs(ctx context.Context, operation, stateClause string) (int, error) {
	query := "SELECT [System.Id] FROM WorkItems" +
		" WHERE [System.TeamProject] = @project" +
		" AND [System.WorkItemType] = 'Bug'" +
		" AND " + stateClause

	var wiql wiqlResponse
	if err := c.postJSON(ctx, c.wiqlURL(), operation, wiqlRequest{Query: query}, &wiql); err != nil {
		return 0, err
	}
	return len(wiql.WorkItems), nil
}

func (c *Client) wiqlURL() string {
	return fmt.Sprintf("%s/%s/_apis/wit/wiql?api-version=%s", c.orgURL, c.project, apiVersion)
}

func (c *Client) postJSON(ctx context.Context, url, operation string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", operation, err)
	}
	return c.doJSON(ctx, "POST", url, operation, bytes.NewReader(payload), dst)
}

func (c *Client) getJSON(ctx context.Context, url, operation string, dst any) error {
	return c.doJSON(ctx, "GET", url, operation, nil, dst)
}

// doJSON executes an HTTP request and decodes the JSON response into dst.
// If the response has an error status, it returns an *APIError.
func (c *Client) doJSON(ctx context.Context, method, url, operation string, body io.Reader, dst any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.SetBasicAuth("", c.pat)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "azure request", "operation", operation, "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, msg)
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

// stripTags flattens the HTML fragments Azure DevOps stores in rich text
// fields into plain text. Tag contents are dropped, entities are left
// as-is except for the common non-breaking space.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteRune(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	out := strings.ReplaceAll(b.String(), "&nbsp;", " ")
	return strings.Join(strings.Fields(out), " ")
}

var _ secondary.StorySource = (*Client)(nil)
var _ secondary.DefectSource = (*Client)(nil)
