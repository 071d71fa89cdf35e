package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStorageSaveLoad(t *testing.T) {
	ctx := t.Context()
	slot := repository.NewMemorySlot()
	storage := repository.NewCartStorage(slot, "", nil)

	items := randomLineItems(3)
	require.NoError(t, storage.Save(ctx, items))

	// written under the default key
	_, err := slot.Read(ctx, repository.DefaultSlotKey)
	require.NoError(t, err)

	assertLineItems(t, items, storage.Load(ctx))
}

func TestCartStorageSaveOverwrites(t *testing.T) {
	ctx := t.Context()
	storage := repository.NewCartStorage(repository.NewMemorySlot(), "k", nil)

	require.NoError(t, storage.Save(ctx, randomLineItems(4)))

	second := randomLineItems(1)
	require.NoError(t, storage.Save(ctx, second))

	assertLineItems(t, second, storage.Load(ctx))
}

func TestCartStorageLoadDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		slot port.Slot
	}{
		{
			name: "absent slot: empty",
			slot: repository.NewMemorySlot(),
		},
		{
			name: "corrupt payload: empty",
			slot: slotWith("k", "%%% not json"),
		},
		{
			name: "wrong shape payload: empty",
			slot: slotWith("k", `{"items": []}`),
		},
		{
			name: "read failure: empty",
			slot: failingSlot{err: errors.New("quota exceeded")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := repository.NewCartStorage(tt.slot, "k", nil)

			assert.Empty(t, storage.Load(t.Context()))
		})
	}
}

func TestCartStorageSaveReportsWriteFailure(t *testing.T) {
	storage := repository.NewCartStorage(failingSlot{err: errors.New("quota exceeded")}, "k", nil)

	err := storage.Save(t.Context(), []domain.LineItem{randomLineItem()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func slotWith(key, payload string) port.Slot {
	slot := repository.NewMemorySlot()
	_ = slot.Write(context.Background(), key, []byte(payload))
	return slot
}

type failingSlot struct {
	err error
}

func (f failingSlot) Read(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func (f failingSlot) Write(context.Context, string, []byte) error {
	return f.err
}
