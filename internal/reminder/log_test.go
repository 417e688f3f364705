package reminder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAddThenCheckDueFiresExactlyOnce(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "reminders.jsonl"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	due := time.Now().Add(time.Hour)
	r, err := l.Add("tomorrow's meeting", due)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if r.Fired {
		t.Fatalf("new reminder should start unfired")
	}

	fired, err := l.CheckDue(time.Now())
	if err != nil {
		t.Fatalf("CheckDue() error = %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("CheckDue() before due fired %d reminders, want 0", len(fired))
	}

	// Simulated time advance past the due time.
	fired, err = l.CheckDue(due.Add(time.Second))
	if err != nil {
		t.Fatalf("CheckDue() error = %v", err)
	}
	if len(fired) != 1 || fired[0].ID != r.ID || !fired[0].Fired {
		t.Fatalf("CheckDue() after due = %+v, want the one reminder fired", fired)
	}

	fired, err = l.CheckDue(due.Add(time.Minute))
	if err != nil {
		t.Fatalf("CheckDue() error = %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("CheckDue() fired again, reminders must fire exactly once")
	}
}

func TestLogSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	due := time.Now().Add(-time.Minute)
	r, err := l.Add("already due", due)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := l.CheckDue(time.Now()); err != nil {
		t.Fatalf("CheckDue() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() reopen error = %v", err)
	}
	all := reopened.All()
	if len(all) != 1 {
		t.Fatalf("All() after reopen = %d reminders, want 1 (last line per ID wins)", len(all))
	}
	if all[0].ID != r.ID || !all[0].Fired {
		t.Fatalf("reopened reminder = %+v, want fired state preserved", all[0])
	}
	if len(reopened.Pending()) != 0 {
		t.Fatalf("Pending() after fire = %d, want 0", len(reopened.Pending()))
	}
}

func TestPendingKeepsCreationOrder(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "reminders.jsonl"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := l.Add(text, time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("Add(%q) error = %v", text, err)
		}
	}

	pending := l.Pending()
	if len(pending) != len(texts) {
		t.Fatalf("Pending() = %d reminders, want %d", len(pending), len(texts))
	}
	for i, text := range texts {
		if pending[i].Text != text {
			t.Fatalf("Pending()[%d].Text = %q, want %q", i, pending[i].Text, text)
		}
	}
}
