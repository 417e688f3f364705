package brain

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockAdapter provides deterministic local replies when no remote backend is
// configured. Tests can override Reply or inject Err.
type MockAdapter struct {
	mu    sync.Mutex
	calls []Request

	Reply func(req Request) string
	Err   error
}

func NewMockAdapter() *MockAdapter { return &MockAdapter{} }

func (a *MockAdapter) Complete(ctx context.Context, req Request) (Response, error) {
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	default:
	}

	a.mu.Lock()
	a.calls = append(a.calls, req)
	reply := a.Reply
	err := a.Err
	a.mu.Unlock()

	if err != nil {
		return Response{}, err
	}
	if reply != nil {
		return Response{Text: reply(req)}, nil
	}
	return Response{Text: buildMockReply(req)}, nil
}

// Calls returns a copy of every request seen so far.
func (a *MockAdapter) Calls() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Request, len(a.calls))
	copy(out, a.calls)
	return out
}

func buildMockReply(req Request) string {
	base := strings.TrimSpace(req.UserText)
	if base == "" {
		base = "I am listening."
	}
	if len(req.Messages) == 0 {
		return fmt.Sprintf("I heard you: %s", base)
	}
	last := strings.TrimSpace(req.Messages[len(req.Messages)-1].Text)
	if last == "" {
		return fmt.Sprintf("I heard you: %s", base)
	}
	return fmt.Sprintf("I heard you: %s. Earlier you mentioned: %s", base, last)
}
