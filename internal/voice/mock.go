package voice

import (
	"context"
	"io"
	"sync"
)

// Utterance is one scripted recognizer result.
type Utterance struct {
	Text string
	Err  error
}

// MockProvider replays a scripted sequence of utterances and records
// everything spoken. Once the script runs out, Listen reports io.EOF.
type MockProvider struct {
	mu     sync.Mutex
	script []Utterance
	next   int
	spoken []string

	SpeakErr error
}

func NewMockProvider(script ...Utterance) *MockProvider {
	return &MockProvider{script: script}
}

func (p *MockProvider) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next >= len(p.script) {
		return "", io.EOF
	}
	u := p.script[p.next]
	p.next++
	return u.Text, u.Err
}

func (p *MockProvider) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SpeakErr != nil {
		return p.SpeakErr
	}
	p.spoken = append(p.spoken, text)
	return nil
}

// Spoken returns a copy of everything spoken so far.
func (p *MockProvider) Spoken() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.spoken))
	copy(out, p.spoken)
	return out
}

func (p *MockProvider) Close() error { return nil }
