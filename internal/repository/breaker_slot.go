package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/sony/gobreaker"
)

// BreakerSlot trips after repeated backend failures so cart saves fail fast
// while the backend is down. An empty slot is not a failure.
type BreakerSlot struct {
	next port.Slot
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerSlot(name string, next port.Slot, cfg config.BreakerConfig, logg *logger.Logger) *BreakerSlot {
	if logg == nil {
		logg = logger.Nop()
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			ctx := logg.WithFields(context.Background(), map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			logg.Warn(ctx, "slot breaker state changed", nil)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, port.ErrSlotEmpty)
		},
	}

	return &BreakerSlot{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(st),
	}
}

func (b *BreakerSlot) Read(ctx context.Context, key string) ([]byte, error) {
	val, err := b.cb.Execute(func() (any, error) {
		return b.next.Read(ctx, key)
	})
	if err != nil {
		if errors.Is(err, port.ErrSlotEmpty) {
			return nil, err
		}
		return nil, fmt.Errorf("breaker[%s]: %w", b.cb.Name(), err)
	}

	data, _ := val.([]byte)
	return data, nil
}

func (b *BreakerSlot) Write(ctx context.Context, key string, data []byte) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.Write(ctx, key, data)
	})
	if err != nil {
		return fmt.Errorf("breaker[%s]: %w", b.cb.Name(), err)
	}
	return nil
}

func (b *BreakerSlot) State() gobreaker.State {
	return b.cb.State()
}
