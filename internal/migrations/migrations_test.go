package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestUpIsRepeatable(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", postgres.BasicWaitStrategies())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, testcontainers.TerminateContainer(container))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	require.NoError(t, migrations.Up(ctx, db))
	require.NoError(t, migrations.Up(ctx, db))

	var revision int64
	err = db.QueryRowContext(ctx,
		`INSERT INTO cart_slots (slot_key, payload) VALUES ('k', '[]') RETURNING revision`).Scan(&revision)
	require.NoError(t, err)
	assert.Equal(t, int64(1), revision)
}

func TestUpRequiresDB(t *testing.T) {
	require.Error(t, migrations.Up(context.Background(), nil))
}
