// Package jira fetches user stories from a Jira Cloud project over the
// REST v3 search API.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/core/richtext"
	"github.com/example/testdeck/internal/core/story"
	"github.com/example/testdeck/internal/ports/secondary"
)

// Client is a read-only client for a single Jira project.
type Client struct {
	baseURL    string
	email      string
	token      string
	projectKey string
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

// New creates a Client from the given provider settings. Credentials are
// sent as HTTP basic auth (email, API token) on every request.
func New(settings config.JiraSettings, opts ...Option) (*Client, error) {
	if settings.URL == "" {
		return nil, fmt.Errorf("jira: url is required")
	}
	if settings.Email == "" || settings.APIToken == "" {
		return nil, fmt.Errorf("jira: email and api token are required")
	}
	if settings.ProjectKey == "" {
		return nil, fmt.Errorf("jira: project key is required")
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
		baseURL:    strings.TrimSuffix(settings.URL, "/"),
		email:      settings.Email,
		token:      settings.APIToken,
		projectKey: settings.ProjectKey,
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
	return "jira"
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

type searchResponse struct {
	Issues []issue `json:"issues"`
}

type issue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary     string          `json:"summary"`
	Description json.RawMessage `json:"description"`
	Priority    *namedField     `json:"priority"`
	Status      *namedField     `json:"status"`
}

type namedField struct {
	Name string `json:"name"`
}

// FetchStories fetches up to limit Story issues from the configured
// project, oldest first, mapped to the local story shape.
func (c *Client) FetchStories(ctx context.Context, limit int) ([]secondary.ProviderStory, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	reqBody := searchRequest{
		JQL:        fmt.Sprintf("project = %q AND issuetype = Story ORDER BY created ASC", c.projectKey),
		MaxResults: limit,
		Fields:     []string{"summary", "description", "priority", "status"},
	}

	var result searchResponse
	if err := c.postJSON(ctx, "/rest/api/3/search", "search stories", reqBody, &result); err != nil {
		return nil, err
	}

	stories := make([]secondary.ProviderStory, 0, len(result.Issues))
	for _, iss := range result.Issues {
		s := secondary.ProviderStory{
			Title:       iss.Fields.Summary,
			Description: richtext.FromJSON(iss.Fields.Description),
			Priority:    "medium",
			Status:      "draft",
		}
		if iss.Fields.Priority != nil {
			s.Priority = story.NormalizePriority(iss.Fields.Priority.Name)
		}
		if iss.Fields.Status != nil {
			s.Status = story.NormalizeStatus(iss.Fields.Status.Name)
		}
		stories = append(stories, s)
	}

	c.logger.InfoContext(ctx, "fetched jira stories", "project", c.projectKey, "count", len(stories))
	return stories, nil
}

// postJSON executes a POST request and decodes the JSON response into dst.
// If the response has an error status, it returns an *APIError.
func (c *Client) postJSON(ctx context.Context, path, operation string, body, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", operation, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", operation, err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "jira request", "operation", operation, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = resp.Status
		}
		return newAPIError(operation, resp.StatusCode, msg)
	}

	// Instances behind SSO proxies serve an HTML login page with a 200
	// status instead of rejecting the request outright.
	if strings.HasPrefix(strings.TrimSpace(string(respBody)), "<") {
		return newAPIError(operation, http.StatusUnauthorized, "received HTML instead of JSON, check credentials")
	}

	if dst != nil {
		if err := json.Unmarshal(respBody, dst); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

var _ secondary.StorySource = (*Client)(nil)
