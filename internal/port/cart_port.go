package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

var ErrSlotEmpty = errors.New("slot is empty")

// CartStorage persists the whole ordered cart. Load never fails: an absent or
// unreadable slot yields an empty sequence.
type CartStorage interface {
	Save(ctx context.Context, items []domain.LineItem) error
	Load(ctx context.Context) []domain.LineItem
}

// Slot is a key-value backend holding one serialized cart per key.
// Read returns ErrSlotEmpty when nothing is stored under key.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}

type CartObserver interface {
	CartChanged(ctx context.Context, change domain.CartChange)
	ItemAdded(ctx context.Context, item domain.LineItem)
}
