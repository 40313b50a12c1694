package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/egannguyen/go-storefront/internal/entity"
)

const pgOpTimeout = 3 * time.Second

// PostgresStore keeps basket records in a single-table Postgres slot. The
// BasketStore contract stays synchronous; each call runs with an internal
// timeout against the backing database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and migrates the baskets table.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS baskets (
			key TEXT PRIMARY KEY,
			items JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate baskets table: %w", err)
	}

	slog.Info("Basket database connected and migrated")
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(key string, items []entity.Product) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal basket: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgOpTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO baskets (key, items, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (key) DO UPDATE SET items = $2, updated_at = NOW()",
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to save basket: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(key string) []entity.Product {
	ctx, cancel := context.WithTimeout(context.Background(), pgOpTimeout)
	defer cancel()

	var raw []byte
	err := s.db.QueryRowContext(ctx, "SELECT items FROM baskets WHERE key = $1", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		slog.Error("Failed to load basket, treating as empty", "key", key, "err", err)
		return nil
	}

	var items []entity.Product
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.Warn("Corrupt basket record, treating as empty", "key", key, "err", err)
		return nil
	}
	return items
}

func (s *PostgresStore) Clear(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), pgOpTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM baskets WHERE key = $1", key); err != nil {
		return fmt.Errorf("failed to clear basket: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
