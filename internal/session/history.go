package session

import (
	"fmt"
	"time"
)

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one utterance in the conversation, immutable once recorded.
type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// History holds the in-process conversation window. Turns beyond the window
// are dropped oldest first; nothing here survives process exit.
type History struct {
	window    int
	turns     []Turn
	total     int
	startedAt time.Time
}

// NewHistory creates a history bounded to window turns.
func NewHistory(window int) *History {
	if window < 1 {
		window = 1
	}
	return &History{
		window:    window,
		startedAt: time.Now().UTC(),
	}
}

// AppendPair records a completed user/assistant exchange and evicts the
// oldest turns once the window is exceeded.
func (h *History) AppendPair(userText, assistantText string) {
	now := time.Now().UTC()
	h.append(Turn{Speaker: SpeakerUser, Text: userText, Timestamp: now})
	h.append(Turn{Speaker: SpeakerAssistant, Text: assistantText, Timestamp: now})
}

func (h *History) append(t Turn) {
	h.turns = append(h.turns, t)
	h.total++
	if len(h.turns) > h.window {
		h.turns = h.turns[len(h.turns)-h.window:]
	}
}

// Recent returns up to n of the newest turns in chronological order.
func (h *History) Recent(n int) []Turn {
	if n <= 0 || n > len(h.turns) {
		n = len(h.turns)
	}
	out := make([]Turn, n)
	copy(out, h.turns[len(h.turns)-n:])
	return out
}

// Len reports the current window occupancy.
func (h *History) Len() int { return len(h.turns) }

// TotalTurns reports every turn recorded this session, including evicted ones.
func (h *History) TotalTurns() int { return h.total }

// StartedAt reports when the session began.
func (h *History) StartedAt() time.Time { return h.startedAt }

// Summary renders the short session digest persisted on graceful exit.
func (h *History) Summary() string {
	lastUser := ""
	for i := len(h.turns) - 1; i >= 0; i-- {
		if h.turns[i].Speaker == SpeakerUser {
			lastUser = h.turns[i].Text
			break
		}
	}
	return fmt.Sprintf("session started %s, %d turns, last user input: %q",
		h.startedAt.Format(time.RFC3339), h.total, lastUser)
}
