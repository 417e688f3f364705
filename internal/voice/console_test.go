package voice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestConsoleListenAndSpeak(t *testing.T) {
	var out bytes.Buffer
	p := NewConsoleProviderWithIO(strings.NewReader("hello aria\n"), &out)

	got, err := p.Listen(context.Background())
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	if got != "hello aria" {
		t.Fatalf("Listen() = %q, want %q", got, "hello aria")
	}

	if err := p.Speak(context.Background(), "hi!"); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if !strings.Contains(out.String(), "aria> hi!") {
		t.Fatalf("output = %q, want the spoken line", out.String())
	}
}

func TestConsoleListenBlankLine(t *testing.T) {
	p := NewConsoleProviderWithIO(strings.NewReader("\nreal input\n"), io.Discard)

	if _, err := p.Listen(context.Background()); !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("Listen() error = %v, want ErrNoSpeech", err)
	}
	got, err := p.Listen(context.Background())
	if err != nil || got != "real input" {
		t.Fatalf("Listen() = %q, %v, want the next line", got, err)
	}
}

func TestConsoleListenEOF(t *testing.T) {
	p := NewConsoleProviderWithIO(strings.NewReader("last line"), io.Discard)

	got, err := p.Listen(context.Background())
	if err != nil || got != "last line" {
		t.Fatalf("Listen() = %q, %v, want trailing unterminated line", got, err)
	}
	if _, err := p.Listen(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("Listen() error = %v, want io.EOF", err)
	}
}
