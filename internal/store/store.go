// Package store is the persistence layer behind the serve subcommand:
// a fill_runs history table in Postgres, and a Redis cache keyed by the
// content fingerprint of a run's inputs so a byte-identical repeat
// request is served without rerunning search.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Database bundles the two backing stores a fill job touches.
type Database struct {
	DB    *sql.DB
	Redis *redis.Client
}

// New opens and pings both backing stores. Either URL may be empty, in
// which case that store's field is left nil: callers (httpapi) run in
// degraded mode without history or caching rather than failing to start.
func New(postgresURL, redisURL string) (*Database, error) {
	d := &Database{}

	if postgresURL != "" {
		db, err := sql.Open("postgres", postgresURL)
		if err != nil {
			return nil, fmt.Errorf("store: failed to connect to postgres: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("store: failed to ping postgres: %w", err)
		}
		d.DB = db
	}

	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("store: failed to parse redis url: %w", err)
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("store: failed to ping redis: %w", err)
		}
		d.Redis = rdb
	}

	return d, nil
}

// Close releases both backing connections. Safe to call when either is nil.
func (d *Database) Close() error {
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			return err
		}
	}
	if d.Redis != nil {
		return d.Redis.Close()
	}
	return nil
}

// InitSchema creates the fill_runs history table if it does not exist.
// No-op when Postgres is not configured.
func (d *Database) InitSchema() error {
	if d.DB == nil {
		return nil
	}

	schema := `
	CREATE TABLE IF NOT EXISTS fill_runs (
		id VARCHAR(36) PRIMARY KEY,
		layout_fingerprint VARCHAR(64) NOT NULL,
		word_fingerprint VARCHAR(64) NOT NULL,
		random_seed BIGINT NOT NULL,
		max_mcts_iterations INTEGER NOT NULL,
		best_reward DOUBLE PRECISION NOT NULL,
		entries_filled INTEGER NOT NULL,
		entries_total INTEGER NOT NULL,
		iterations_run INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_fill_runs_started_at ON fill_runs(started_at);
	`

	_, err := d.DB.Exec(schema)
	if err != nil {
		return fmt.Errorf("store: failed to init schema: %w", err)
	}
	return nil
}
