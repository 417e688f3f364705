package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoSpeech reports a capture window that produced no usable transcript.
// The loop discards the turn and keeps listening.
var ErrNoSpeech = errors.New("no speech recognized")

// Recognizer captures one utterance and returns its transcript. The call
// blocks until the underlying engine commits a result.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Synthesizer speaks one utterance, blocking until playback completes.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Provider bundles both capabilities; every backend implements it.
type Provider interface {
	Recognizer
	Synthesizer
	Close() error
}

// Config controls provider selection.
type Config struct {
	Mode          string
	GatewayURL    string
	GatewayKey    string
	Language      string
	ListenTimeout time.Duration
}

// NewProvider selects a backend by mode. In auto mode the gateway is used
// when configured, otherwise the console fallback.
func NewProvider(cfg Config) (Provider, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.GatewayURL) != "" {
			return NewGatewayProvider(GatewayConfig{
				URL:      cfg.GatewayURL,
				APIKey:   cfg.GatewayKey,
				Language: cfg.Language,
				Timeout:  cfg.ListenTimeout,
			}), nil
		}
		return NewConsoleProvider(), nil
	case "gateway":
		if strings.TrimSpace(cfg.GatewayURL) == "" {
			return nil, errors.New("ARIA_VOICE_GATEWAY_URL is required for gateway voice mode")
		}
		return NewGatewayProvider(GatewayConfig{
			URL:      cfg.GatewayURL,
			APIKey:   cfg.GatewayKey,
			Language: cfg.Language,
			Timeout:  cfg.ListenTimeout,
		}), nil
	case "console":
		return NewConsoleProvider(), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported voice mode %q", cfg.Mode)
	}
}
