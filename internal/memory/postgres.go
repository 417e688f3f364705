package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists memory records in PostgreSQL for installs that want
// durability beyond a flat file.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS memory_records (
			category TEXT NOT NULL,
			key TEXT NOT NULL,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (category, key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_memory_records_category ON memory_records (category);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, category Category, key string) (Record, error) {
	r := Record{Category: category, Key: key}
	err := s.pool.QueryRow(ctx,
		`SELECT value, updated_at FROM memory_records WHERE category=$1 AND key=$2`,
		string(category), key,
	).Scan(&r.Value, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get memory record: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) Set(ctx context.Context, category Category, key string, value any) error {
	if !ValidCategory(category) {
		return fmt.Errorf("invalid memory category %q", category)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode memory value: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO memory_records (category, key, value, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (category, key) DO UPDATE SET value=$3, updated_at=$4`,
		string(category), key, raw, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set memory record: %w", err)
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context, category Category) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT key, value, updated_at FROM memory_records WHERE category=$1 ORDER BY key`,
		string(category),
	)
	if err != nil {
		return nil, fmt.Errorf("query memory records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r := Record{Category: category}
		if err := rows.Scan(&r.Key, &r.Value, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan memory record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memory records: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
