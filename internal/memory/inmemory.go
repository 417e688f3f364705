package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// InMemoryStore is a simple in-process store for tests and ephemeral runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[Category]map[string]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[Category]map[string]Record)}
}

func (s *InMemoryStore) Get(_ context.Context, category Category, key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[category][key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) Set(_ context.Context, category Category, key string, value any) error {
	if !ValidCategory(category) {
		return fmt.Errorf("invalid memory category %q", category)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode memory value: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[category] == nil {
		s.records[category] = make(map[string]Record)
	}
	s.records[category][key] = Record{
		Category:  category,
		Key:       key,
		Value:     raw,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *InMemoryStore) All(_ context.Context, category Category) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byKey := s.records[category]
	out := make([]Record, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *InMemoryStore) Close() error { return nil }
