package reminder

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reminder is a fire-once scheduled alert. Entries are never deleted; firing
// appends an updated line, and on load the last line per ID wins.
type Reminder struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	DueTime   time.Time `json:"due_time"`
	CreatedAt time.Time `json:"created_at"`
	Fired     bool      `json:"fired"`
}

// Log is an append-only JSON-lines reminder log backed by a single file.
type Log struct {
	mu    sync.Mutex
	path  string
	order []string
	byID  map[string]Reminder
}

func Open(path string) (*Log, error) {
	l := &Log{
		path: path,
		byID: make(map[string]Reminder),
	}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Log) load() error {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open reminder log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var r Reminder
		if err := json.Unmarshal(raw, &r); err != nil {
			return fmt.Errorf("decode reminder log %s line %d: %w", l.path, line, err)
		}
		if _, seen := l.byID[r.ID]; !seen {
			l.order = append(l.order, r.ID)
		}
		l.byID[r.ID] = r
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read reminder log: %w", err)
	}
	return nil
}

// Add records a new reminder and persists it before returning.
func (l *Log) Add(text string, due time.Time) (Reminder, error) {
	r := Reminder{
		ID:        uuid.NewString(),
		Text:      text,
		DueTime:   due.UTC(),
		CreatedAt: time.Now().UTC(),
		Fired:     false,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.appendLocked(r); err != nil {
		return Reminder{}, err
	}
	l.order = append(l.order, r.ID)
	l.byID[r.ID] = r
	return r, nil
}

// CheckDue flips Fired for every reminder whose due time has passed and
// returns the newly fired set. A reminder fires exactly once.
func (l *Log) CheckDue(now time.Time) ([]Reminder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var fired []Reminder
	for _, id := range l.order {
		r := l.byID[id]
		if r.Fired || r.DueTime.After(now) {
			continue
		}
		r.Fired = true
		if err := l.appendLocked(r); err != nil {
			return fired, err
		}
		l.byID[id] = r
		fired = append(fired, r)
	}
	return fired, nil
}

// Pending returns reminders that have not fired yet.
func (l *Log) Pending() []Reminder {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Reminder
	for _, id := range l.order {
		if r := l.byID[id]; !r.Fired {
			out = append(out, r)
		}
	}
	return out
}

// All returns every reminder in creation order.
func (l *Log) All() []Reminder {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Reminder, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

func (l *Log) appendLocked(r Reminder) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create reminder dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open reminder log: %w", err)
	}
	defer f.Close()

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reminder: %w", err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("append reminder: %w", err)
	}
	return nil
}
