package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/antoniostano/aria/internal/reliability"
)

const (
	gatewayDialAttempts = 3
	gatewayDialBackoff  = 200 * time.Millisecond
	gatewayDialCap      = 2 * time.Second
)

// GatewayConfig controls the speech gateway connection.
type GatewayConfig struct {
	URL      string
	APIKey   string
	Language string
	Timeout  time.Duration
}

// GatewayProvider talks to a speech gateway over WebSocket. The gateway owns
// the microphone and speaker; this side only exchanges small JSON frames.
// Each Listen or Speak uses a fresh connection so a dropped gateway never
// wedges the loop.
type GatewayProvider struct {
	cfg GatewayConfig
}

type gatewayRequest struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	Language  string `json:"language,omitempty"`
	TimeoutMS int64  `json:"timeout_ms,omitempty"`
}

type gatewayEvent struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func NewGatewayProvider(cfg GatewayConfig) *GatewayProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 12 * time.Second
	}
	return &GatewayProvider{cfg: cfg}
}

func (p *GatewayProvider) Listen(ctx context.Context) (string, error) {
	conn, err := p.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	req := gatewayRequest{
		Type:      "listen",
		Language:  p.cfg.Language,
		TimeoutMS: p.cfg.Timeout.Milliseconds(),
	}
	if err := conn.WriteJSON(req); err != nil {
		return "", fmt.Errorf("send listen request: %w", err)
	}

	ev, err := p.awaitEvent(ctx, conn)
	if err != nil {
		return "", err
	}
	switch ev.Type {
	case "transcript":
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return "", ErrNoSpeech
		}
		return text, nil
	case "no_speech", "timeout":
		return "", ErrNoSpeech
	case "error":
		return "", fmt.Errorf("gateway recognition error %s: %s", ev.Code, ev.Detail)
	default:
		return "", fmt.Errorf("unexpected gateway event %q", ev.Type)
	}
}

func (p *GatewayProvider) Speak(ctx context.Context, text string) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(gatewayRequest{Type: "speak", Text: text}); err != nil {
		return fmt.Errorf("send speak request: %w", err)
	}

	ev, err := p.awaitEvent(ctx, conn)
	if err != nil {
		return err
	}
	switch ev.Type {
	case "spoken":
		return nil
	case "error":
		return fmt.Errorf("gateway synthesis error %s: %s", ev.Code, ev.Detail)
	default:
		return fmt.Errorf("unexpected gateway event %q", ev.Type)
	}
}

func (p *GatewayProvider) Close() error { return nil }

func (p *GatewayProvider) dial(ctx context.Context) (*websocket.Conn, error) {
	headers := http.Header{}
	if strings.TrimSpace(p.cfg.APIKey) != "" {
		headers.Set("x-api-key", p.cfg.APIKey)
	}

	var lastErr error
	for attempt := 0; attempt < gatewayDialAttempts; attempt++ {
		if attempt > 0 {
			wait := reliability.ExponentialBackoff(attempt-1, gatewayDialBackoff, gatewayDialCap)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, p.cfg.URL, headers)
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("dial speech gateway: %w", lastErr)
}

func (p *GatewayProvider) awaitEvent(ctx context.Context, conn *websocket.Conn) (gatewayEvent, error) {
	deadline := time.Now().Add(p.cfg.Timeout + 5*time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return gatewayEvent{}, fmt.Errorf("set read deadline: %w", err)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return gatewayEvent{}, fmt.Errorf("read gateway event: %w", err)
		}
		var ev gatewayEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return gatewayEvent{}, fmt.Errorf("decode gateway event: %w", err)
		}
		// Ignore keepalives and partial transcripts.
		if ev.Type == "ping" || ev.Type == "partial" {
			continue
		}
		return ev, nil
	}
}
