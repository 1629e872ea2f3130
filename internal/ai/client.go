package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultModel       = "gpt-4.1-mini"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultTemperature = 0.2
	defaultTimeout     = 90 * time.Second
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("ai: api key must not be empty")

// Config describes how the chat model should be initialised.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client asks an OpenAI-compatible chat model for nutrition content.
type Client struct {
	llm         llms.Model
	model       string
	temperature float64
}

// NewClient builds a Client backed by an OpenAI-compatible endpoint.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithBaseURL(strings.TrimRight(baseURL, "/")),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("ai: create model: %w", err)
	}

	return NewClientWithModel(llm, model, cfg.Temperature), nil
}

// NewClientWithModel wraps an existing model, e.g. a fake in tests.
func NewClientWithModel(llm llms.Model, model string, temperature float64) *Client {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &Client{llm: llm, model: model, temperature: temperature}
}

// Model reports the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(c.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("ai: call model: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("ai: model returned no choices")
	}

	return stripFences(resp.Choices[0].Content), nil
}

// stripFences removes a surrounding Markdown code block, with or without a
// language tag.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 && !strings.ContainsAny(content[:newline], "{[") {
		content = content[newline+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
