package metrics

import (
	"context"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

type instrumentedStorage struct {
	next  port.CartStorage
	saves *prometheus.CounterVec
	loads prometheus.Counter
}

// InstrumentStorage counts saves by result and loads. Load cannot fail, so
// loads are counted without a result label.
func InstrumentStorage(next port.CartStorage, reg prometheus.Registerer) port.CartStorage {
	if reg == nil {
		return next
	}
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_storage_saves_total",
		Help: "Cart saves by result.",
	}, []string{"result"})
	loads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_storage_loads_total",
		Help: "Cart loads from the storage slot.",
	})
	reg.MustRegister(saves, loads)
	return &instrumentedStorage{
		next:  next,
		saves: saves,
		loads: loads,
	}
}

func (s *instrumentedStorage) Save(ctx context.Context, items []domain.LineItem) error {
	err := s.next.Save(ctx, items)
	if err != nil {
		s.saves.WithLabelValues(resultFailure).Inc()
		return err
	}
	s.saves.WithLabelValues(resultSuccess).Inc()
	return nil
}

func (s *instrumentedStorage) Load(ctx context.Context) []domain.LineItem {
	s.loads.Inc()
	return s.next.Load(ctx)
}
