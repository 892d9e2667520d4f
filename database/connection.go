package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing for the matchbook workload. Traffic is a handful of players
// plus an admin, so a small pool is plenty; the lifetime cap keeps
// connections from outliving load-balancer idle timeouts.
const (
	poolMaxConns        = 10
	poolMaxConnLifetime = 30 * time.Minute
)

// DB wraps the pgx pool shared by all repositories.
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens a pool against databaseURL and verifies it with a ping.
// Every connection runs in UTC so timestamps compare the same regardless of
// where the server is deployed.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = poolMaxConns
	poolConfig.MaxConnLifetime = poolMaxConnLifetime
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "matchbook"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases the pool and all of its connections.
func (db *DB) Close() {
	db.Pool.Close()
}
