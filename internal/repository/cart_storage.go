package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/port"
)

const DefaultSlotKey = "fragranceCart"

type cartStorage struct {
	slot port.Slot
	key  string
	logg *logger.Logger
}

func NewCartStorage(slot port.Slot, key string, logg *logger.Logger) port.CartStorage {
	if key == "" {
		key = DefaultSlotKey
	}
	if logg == nil {
		logg = logger.Nop()
	}

	return &cartStorage{
		slot: slot,
		key:  key,
		logg: logg,
	}
}

func (s *cartStorage) Save(ctx context.Context, items []domain.LineItem) error {
	data, err := EncodeItems(items)
	if err != nil {
		return fmt.Errorf("EncodeItems: %w", err)
	}

	if err := s.slot.Write(ctx, s.key, data); err != nil {
		return fmt.Errorf("slot.Write[%s]: %w", s.key, err)
	}

	return nil
}

func (s *cartStorage) Load(ctx context.Context) []domain.LineItem {
	ctx = s.logg.WithSlotKey(ctx, s.key)

	data, err := s.slot.Read(ctx, s.key)
	if err != nil {
		if errors.Is(err, port.ErrSlotEmpty) {
			s.logg.Debug(ctx, "cart slot is empty")
			return nil
		}
		s.logg.Warn(ctx, "cart slot unreadable, starting empty", err)
		return nil
	}

	items, err := DecodeItems(data)
	if err != nil {
		s.logg.Warn(ctx, "cart slot corrupt, starting empty", err)
		return nil
	}

	return items
}
