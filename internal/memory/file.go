package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileStore keeps all records in one JSON document, rewritten in full on each
// mutation. Writes go to a temp file in the same directory followed by a
// rename, so a crash mid-write never truncates the live document.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	records map[Category]map[string]Record
}

type fileDocument struct {
	Records []Record `json:"records"`
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		records: make(map[Category]map[string]Record),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read memory file: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode memory file %s: %w", s.path, err)
	}
	for _, r := range doc.Records {
		if s.records[r.Category] == nil {
			s.records[r.Category] = make(map[string]Record)
		}
		s.records[r.Category][r.Key] = r
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, category Category, key string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[category][key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (s *FileStore) Set(_ context.Context, category Category, key string, value any) error {
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
	return s.flushLocked()
}

func (s *FileStore) All(_ context.Context, category Category) ([]Record, error) {
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

func (s *FileStore) Close() error { return nil }

func (s *FileStore) flushLocked() error {
	var doc fileDocument
	for _, byKey := range s.records {
		for _, r := range byKey {
			doc.Records = append(doc.Records, r)
		}
	}
	sort.Slice(doc.Records, func(i, j int) bool {
		if doc.Records[i].Category != doc.Records[j].Category {
			return doc.Records[i].Category < doc.Records[j].Category
		}
		return doc.Records[i].Key < doc.Records[j].Key
	})

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memory file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create memory dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("create temp memory file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp memory file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp memory file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace memory file: %w", err)
	}
	return nil
}
