package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

const (
	readSlotSQL = `SELECT payload FROM cart_slots WHERE slot_key = $1`

	readRevisionSQL = `SELECT revision FROM cart_slots WHERE slot_key = $1`

	// serializes concurrent writers of the same key until commit
	lockSlotSQL = `SELECT pg_advisory_xact_lock(hashtext($1))`

	upsertSlotSQL = `
INSERT INTO cart_slots (slot_key, payload, revision, updated_at)
VALUES ($1, $2, 1, now())
ON CONFLICT (slot_key) DO UPDATE
SET payload = EXCLUDED.payload,
    revision = cart_slots.revision + 1,
    updated_at = now()
RETURNING revision`
)

type PostgresSlot struct {
	q    querier
	pool *pgxpool.Pool
}

func NewPostgresSlot(pool *pgxpool.Pool) *PostgresSlot {
	return &PostgresSlot{
		q:    pool,
		pool: pool,
	}
}

func NewPostgresSlotWithTx(tx pgx.Tx) *PostgresSlot {
	return &PostgresSlot{
		q:    tx,
		pool: nil, // use provided transaction instead
	}
}

func (s *PostgresSlot) Read(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	var payload string
	if err := s.q.QueryRow(ctx, readSlotSQL, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrSlotEmpty
		}
		return nil, fmt.Errorf("q.QueryRow: %w", err)
	}

	return []byte(payload), nil
}

func (s *PostgresSlot) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.write(ctx, key, data)
	return err
}

// write returns the slot revision after the upsert.
func (s *PostgresSlot) write(ctx context.Context, key string, data []byte) (int64, error) {
	if key == "" {
		return 0, fmt.Errorf("key is empty")
	}

	return withTx(ctx, s.pool, s.q, func(q querier) (int64, error) {
		if _, err := q.Exec(ctx, lockSlotSQL, key); err != nil {
			return 0, fmt.Errorf("q.Exec lock: %w", err)
		}

		var revision int64
		if err := q.QueryRow(ctx, upsertSlotSQL, key, string(data)).Scan(&revision); err != nil {
			return 0, fmt.Errorf("q.QueryRow upsert: %w", err)
		}

		return revision, nil
	})
}

// Revision counts the writes a key has received; zero when it has none.
func (s *PostgresSlot) Revision(ctx context.Context, key string) (int64, error) {
	var revision int64
	if err := s.q.QueryRow(ctx, readRevisionSQL, key).Scan(&revision); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}
	return revision, nil
}

func (s *PostgresSlot) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}
