package main

import (
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSlot(t *testing.T) {
	tests := []struct {
		name    string
		storage config.StorageConfig
		wantErr bool
	}{
		{name: "memory", storage: config.StorageConfig{Driver: config.DriverMemory}},
		{name: "file", storage: config.StorageConfig{Driver: config.DriverFile, FileDir: t.TempDir()}},
		{name: "file without dir: error", storage: config.StorageConfig{Driver: config.DriverFile}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Storage: tt.storage}

			slot, err := openSlot(t.Context(), cfg, logger.Nop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer slot.close()

			storage := repository.NewCartStorage(slot, "", nil)
			assert.Empty(t, storage.Load(t.Context()))
			assert.Nil(t, slot.pinger)
		})
	}
}

func TestOpenSlotRedisRequiresAddress(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.DriverRedis}}

	_, err := openSlot(t.Context(), cfg, logger.Nop())
	require.ErrorContains(t, err, "redis url or address is required")
}

func TestGuard(t *testing.T) {
	slot := repository.NewMemorySlot()

	off := &config.Config{}
	assert.Same(t, slot, guard(off, slot, logger.Nop()))

	on := &config.Config{Storage: config.StorageConfig{Driver: config.DriverRedis}}
	on.Breaker.Enabled = true
	on.Breaker.MinRequests = 1
	on.Breaker.FailureRatio = 1
	_, ok := guard(on, slot, logger.Nop()).(*repository.BreakerSlot)
	assert.True(t, ok)
}

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		autoMigrate bool
		want        bool
	}{
		{name: "dev with auto migrate: run", env: "dev", autoMigrate: true, want: true},
		{name: "dev in upper case: run", env: "DEV", autoMigrate: true, want: true},
		{name: "dev without auto migrate: skip", env: "dev", autoMigrate: false},
		{name: "prod with auto migrate: skip", env: "prod", autoMigrate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				App:      config.AppConfig{Env: tt.env},
				Postgres: config.PostgresConfig{AutoMigrate: tt.autoMigrate},
			}
			assert.Equal(t, tt.want, shouldMigrate(cfg))
		})
	}
}
