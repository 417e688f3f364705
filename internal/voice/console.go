package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConsoleProvider is the keyless fallback: it reads utterances from stdin
// and "speaks" by printing to stdout.
type ConsoleProvider struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewConsoleProviderWithIO wires custom streams (for testing).
func NewConsoleProviderWithIO(in io.Reader, out io.Writer) *ConsoleProvider {
	return &ConsoleProvider{in: bufio.NewReader(in), out: out}
}

func (p *ConsoleProvider) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, "you> ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		// EOF ends the session; a trailing unterminated line still counts.
		if err == io.EOF && strings.TrimSpace(line) == "" {
			return "", io.EOF
		}
		if err != io.EOF {
			return "", fmt.Errorf("read input: %w", err)
		}
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

func (p *ConsoleProvider) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.out, "aria> %s\n", text)
	return err
}

func (p *ConsoleProvider) Close() error { return nil }
