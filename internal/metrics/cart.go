package metrics

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics observes cart mutations and exports them to prometheus.
// Gauges follow the newest change by Seq; counters count every change.
type CartMetrics struct {
	mu      sync.Mutex
	lastSeq uint64

	mutations  *prometheus.CounterVec
	itemsAdded prometheus.Counter
	itemCount  prometheus.Gauge
	total      prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	itemsAdded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_items_added_total",
		Help: "Items added to the cart, counting merges.",
	})
	itemCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_item_count",
		Help: "Sum of quantities currently in the cart.",
	})
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_total",
		Help: "Current cart total in the display currency.",
	})
	reg.MustRegister(mutations, itemsAdded, itemCount, total)
	return &CartMetrics{
		mutations:  mutations,
		itemsAdded: itemsAdded,
		itemCount:  itemCount,
		total:      total,
	}
}

func (c *CartMetrics) CartChanged(_ context.Context, change domain.CartChange) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(string(change.Op))).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	if change.Seq < c.lastSeq {
		return
	}
	c.lastSeq = change.Seq
	c.itemCount.Set(float64(change.Cart.ItemCount()))
	c.total.Set(change.Cart.Total().InexactFloat64())
}

func (c *CartMetrics) ItemAdded(_ context.Context, _ domain.LineItem) {
	if c == nil || c.itemsAdded == nil {
		return
	}
	c.itemsAdded.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
