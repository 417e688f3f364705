package memory

import (
	"context"
	"strings"
)

// NewStore creates a postgres-backed store when configured, otherwise the
// default flat-file store.
func NewStore(ctx context.Context, databaseURL, filePath string) (Store, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return NewPostgresStore(ctx, databaseURL)
	}
	return NewFileStore(filePath)
}
