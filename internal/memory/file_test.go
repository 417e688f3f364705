package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestFileStoreReadAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	ctx := context.Background()
	if err := s.Set(ctx, CategoryPreference, "voice", "calm"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get(ctx, CategoryPreference, "voice")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ValueString() != "calm" {
		t.Fatalf("ValueString() = %q, want %q", got.ValueString(), "calm")
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := s.Set(ctx, CategoryFact, "name", "Sam"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, CategoryFact, "name", "Theodore"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	got, err := reopened.Get(ctx, CategoryFact, "name")
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.ValueString() != "Theodore" {
		t.Fatalf("ValueString() = %q, want overwrite to win", got.ValueString())
	}
}

func TestFileStoreKeysScopedByCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := s.Set(ctx, CategoryPreference, "style", "brief"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, CategoryTemplate, "style", "# {{title}}"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	pref, err := s.Get(ctx, CategoryPreference, "style")
	if err != nil {
		t.Fatalf("Get(preference) error = %v", err)
	}
	tmpl, err := s.Get(ctx, CategoryTemplate, "style")
	if err != nil {
		t.Fatalf("Get(template) error = %v", err)
	}
	if pref.ValueString() == tmpl.ValueString() {
		t.Fatalf("categories should not share values, both = %q", pref.ValueString())
	}

	if _, err := s.Get(ctx, CategoryFact, "style"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(fact) error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := s.Set(context.Background(), Category("mood"), "k", "v"); err == nil {
		t.Fatalf("Set() expected error for unknown category")
	}
}

func TestFileStoreAllSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	for _, k := range []string{"zeta", "alpha", "mid"} {
		if err := s.Set(ctx, CategoryPreference, k, k); err != nil {
			t.Fatalf("Set(%q) error = %v", k, err)
		}
	}

	all, err := s.All(ctx, CategoryPreference)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("All() returned %d records, want 3", len(all))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if all[i].Key != want {
			t.Fatalf("All()[%d].Key = %q, want %q", i, all[i].Key, want)
		}
	}
}
