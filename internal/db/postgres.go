package db

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	newPool = pgxpool.New
	pingDB  = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
)

// InitPostgres opens a connection pool for the given DSN. An empty DSN is
// not an error: the caller falls back to the in-memory store.
func InitPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, nil
	}

	pool, err := newPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pingDB(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Println("Connected to Postgres")
	return pool, nil
}
