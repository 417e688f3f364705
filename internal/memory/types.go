package memory

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Category partitions the memory namespace. Keys are unique within a category.
type Category string

const (
	CategoryPreference Category = "preference"
	CategoryTemplate   Category = "template"
	CategoryFact       Category = "fact"
)

var ErrNotFound = errors.New("memory record not found")

// Record stores a single persisted key-value fact, preference, or template.
type Record struct {
	Category  Category        `json:"category"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ValueString decodes the record value as a plain string, falling back to the
// raw JSON text for non-string values.
func (r Record) ValueString() string {
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	return string(r.Value)
}

// Store persists and retrieves memory records. Every Set is durable before it
// returns.
type Store interface {
	Get(ctx context.Context, category Category, key string) (Record, error)
	Set(ctx context.Context, category Category, key string, value any) error
	All(ctx context.Context, category Category) ([]Record, error)
	Close() error
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryPreference, CategoryTemplate, CategoryFact:
		return true
	default:
		return false
	}
}
