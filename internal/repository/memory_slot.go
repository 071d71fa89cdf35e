package repository

import (
	"bytes"
	"context"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/port"
)

type MemorySlot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{
		data: make(map[string][]byte),
	}
}

func (m *MemorySlot) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, port.ErrSlotEmpty
	}
	return bytes.Clone(data), nil
}

func (m *MemorySlot) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = bytes.Clone(data)
	return nil
}
