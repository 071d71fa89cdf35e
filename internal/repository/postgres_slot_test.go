package repository_test

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type postgresSlotSuite struct {
	suite.Suite

	slot *repository.PostgresSlot
	pool *pgxpool.Pool
	ctr  testcontainers.Container
}

// entry point to run the tests in the suite
func TestPostgresSlotSuite(t *testing.T) {
	suite.Run(t, new(postgresSlotSuite))
}

// before all tests in the suite
func (suite *postgresSlotSuite) SetupSuite() {
	ctx := suite.T().Context()

	ctr, pool, err := startPostgres(ctx)
	if ctr != nil {
		suite.ctr = ctr
	}
	suite.Require().NoError(err)
	suite.pool = pool

	suite.slot = repository.NewPostgresSlot(suite.pool)
}

// after all tests in the suite
func (suite *postgresSlotSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.ctr != nil {
		_ = testcontainers.TerminateContainer(suite.ctr)
	}
}

func (suite *postgresSlotSuite) TestReadWrite() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		key       string
		writes    []string
		want      string
		wantEmpty bool
		wantError string
	}{
		{
			name:   "single write: ok",
			key:    gofakeit.UUID(),
			writes: []string{`[{"id":"a"}]`},
			want:   `[{"id":"a"}]`,
		},
		{
			name:   "second write overwrites: ok",
			key:    gofakeit.UUID(),
			writes: []string{`[{"id":"a"}]`, `[]`},
			want:   `[]`,
		},
		{
			name:      "never written: empty",
			key:       gofakeit.UUID(),
			wantEmpty: true,
		},
		{
			name:      "empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, w := range tt.writes {
				require.NoError(t, suite.slot.Write(ctx, tt.key, []byte(w)))
			}

			got, err := suite.slot.Read(ctx, tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantEmpty {
				require.ErrorIs(t, err, port.ErrSlotEmpty)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			revision, err := suite.slot.Revision(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.writes)), revision)
		})
	}
}

func (suite *postgresSlotSuite) TestConcurrentWritesAreSerialized() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	const writers = 8
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, suite.slot.Write(ctx, key, []byte(`[]`)))
		}()
	}
	wg.Wait()

	revision, err := suite.slot.Revision(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(writers), revision)
}

func (suite *postgresSlotSuite) TestWriteWithCallerTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, repository.NewPostgresSlotWithTx(tx).Write(ctx, key, []byte(`[]`)))
	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.slot.Read(ctx, key)
	require.ErrorIs(t, err, port.ErrSlotEmpty)
}

func (suite *postgresSlotSuite) TestCartStorageRoundTrip() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	storage := repository.NewCartStorage(suite.slot, gofakeit.UUID(), nil)

	items := randomLineItems(4)
	require.NoError(t, storage.Save(ctx, items))

	assertLineItems(t, items, storage.Load(ctx))
}

func (suite *postgresSlotSuite) TestCorruptPayloadLoadsEmpty() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	require.NoError(t, suite.slot.Write(ctx, key, []byte(`not-json`)))

	assert.Empty(t, repository.NewCartStorage(suite.slot, key, nil).Load(ctx))
}

func (suite *postgresSlotSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_slots")
	suite.NoError(err)
}

func (suite *postgresSlotSuite) TestPing() {
	suite.Require().NoError(suite.slot.Ping(suite.T().Context()))
}
