package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior conversation turn included in the prompt.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Request is the normalized completion request sent to the reasoning backend.
type Request struct {
	System   string    `json:"system,omitempty"`
	Messages []Message `json:"messages,omitempty"`
	UserText string    `json:"input_text"`
}

// Response is the completion result. The text is returned verbatim.
type Response struct {
	Text string `json:"text"`
}

// Adapter bridges the assistant with a remote reasoning backend. Complete is
// synchronous: one prompt in, one text out.
type Adapter interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Config controls adapter construction.
type Config struct {
	Mode            string
	Model           string
	MaxTokens       int
	Timeout         time.Duration
	AnthropicAPIKey string
	OpenAIAPIKey    string
	HTTPURL         string
}

// NewAdapter selects a backend by mode. In auto mode the first configured
// backend wins: anthropic, then openai, then http, then mock.
func NewAdapter(cfg Config) (Adapter, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.AnthropicAPIKey) != "" {
			return NewAnthropicAdapter(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens), nil
		}
		if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
			return NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.Model, cfg.MaxTokens), nil
		}
		if strings.TrimSpace(cfg.HTTPURL) != "" {
			return NewHTTPAdapter(cfg.HTTPURL, cfg.Timeout), nil
		}
		return NewMockAdapter(), nil
	case "anthropic":
		if strings.TrimSpace(cfg.AnthropicAPIKey) == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for anthropic brain mode")
		}
		return NewAnthropicAdapter(cfg.AnthropicAPIKey, cfg.Model, cfg.MaxTokens), nil
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			return nil, errors.New("OPENAI_API_KEY is required for openai brain mode")
		}
		return NewOpenAIAdapter(cfg.OpenAIAPIKey, cfg.Model, cfg.MaxTokens), nil
	case "http":
		if strings.TrimSpace(cfg.HTTPURL) == "" {
			return nil, errors.New("ARIA_BRAIN_HTTP_URL is required for http brain mode")
		}
		return NewHTTPAdapter(cfg.HTTPURL, cfg.Timeout), nil
	case "mock":
		return NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unsupported brain mode %q", cfg.Mode)
	}
}
