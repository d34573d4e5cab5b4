// Package llm calls an OpenAI-compatible chat completion endpoint. Two
// auth variants are supported: the Azure OpenAI deployment style with an
// api-key header, and the plain bearer token style with a model field.
// The variant is explicit in configuration, never guessed from the URL.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/testdeck/internal/config"
	"github.com/example/testdeck/internal/ports/secondary"
)

// Client sends chat completion requests to the configured endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
	auth       string
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

// New creates a Client from the given provider settings.
func New(settings config.LLMSettings, opts ...Option) (*Client, error) {
	if settings.Endpoint == "" {
		return nil, fmt.Errorf("llm: endpoint is required")
	}
	if settings.APIKey == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	if settings.Deployment == "" {
		return nil, fmt.Errorf("llm: deployment is required")
	}
	switch settings.Auth {
	case config.LLMAuthAPIKey:
		if settings.APIVersion == "" {
			return nil, fmt.Errorf("llm: api-key auth requires api_version")
		}
	case config.LLMAuthBearer:
	default:
		return nil, fmt.Errorf("llm: unknown auth variant %q", settings.Auth)
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
		endpoint:   strings.TrimSuffix(settings.Endpoint, "/"),
		apiKey:     settings.APIKey,
		deployment: settings.Deployment,
		apiVersion: settings.APIVersion,
		auth:       settings.Auth,
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

type chatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one system plus user exchange and returns the model
// reply with usage accounting.
func (c *Client) Complete(ctx context.Context, req secondary.CompletionRequest) (*secondary.CompletionResult, error) {
	body := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: userContent(req)},
		},
	}

	var url string
	if c.auth == config.LLMAuthBearer {
		body.Model = c.deployment
		url = c.endpoint + "/v1/chat/completions"
	} else {
		url = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			c.endpoint, c.deployment, c.apiVersion)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("completion: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("completion: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.auth == config.LLMAuthBearer {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	} else {
		httpReq.Header.Set("api-key", c.apiKey)
	}

	c.logger.InfoContext(ctx, "completion request", "deployment", c.deployment, "images", len(req.Images))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion: do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("completion: read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("completion: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		}
		return nil, fmt.Errorf("completion: decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := resp.Status
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("completion: HTTP %d: %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("completion: response contained no choices")
	}

	return &secondary.CompletionResult{
		Text:             parsed.Choices[0].Message.Content,
		Model:            parsed.Model,
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
	}, nil
}

// userContent builds the user message content: a plain string when there
// are no images, otherwise a part list with inline data URLs.
func userContent(req secondary.CompletionRequest) any {
	if len(req.Images) == 0 {
		return req.User
	}

	parts := []contentPart{{Type: "text", Text: req.User}}
	for _, img := range req.Images {
		parts = append(parts, contentPart{
			Type: "image_url",
			ImageURL: &imageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", img.MediaType, base64.StdEncoding.EncodeToString(img.Data)),
			},
		})
	}
	return parts
}

var _ secondary.CompletionClient = (*Client)(nil)
