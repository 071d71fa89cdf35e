package repository_test

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres runs a throwaway Postgres with the cart slot schema applied.
// The container is returned even on error so the caller can terminate it.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, *pgxpool.Pool, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return postgresContainer, nil, fmt.Errorf("pc.ConnectionString: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return postgresContainer, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		pool.Close()
		return postgresContainer, nil, fmt.Errorf("migrations.Up: %w", err)
	}

	return postgresContainer, pool, nil
}
