// Package cart holds the cart state machine. Every mutation resaves the whole
// cart and then notifies observers; no operation returns an error.
package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/logger"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu   sync.Mutex
	cart domain.Cart
	seq  uint64

	storage   port.CartStorage
	observers []port.CartObserver
	newID     func() string
	logg      *logger.Logger
}

type Option func(*Store)

func WithLogger(logg *logger.Logger) Option {
	return func(s *Store) {
		if logg != nil {
			s.logg = logg
		}
	}
}

func WithObservers(observers ...port.CartObserver) Option {
	return func(s *Store) {
		s.observers = append(s.observers, observers...)
	}
}

// WithIDGenerator sets the ID given to items added without one.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New hydrates the store from storage.
func New(ctx context.Context, storage port.CartStorage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		newID:   domain.NewItemID,
		logg:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cart = domain.NewCart(storage.Load(ctx))
	s.logg.Debug(s.logg.WithField(ctx, "items", s.cart.Len()), "cart hydrated")

	return s
}

// Subscribe adds an observer after construction, e.g. a presenter that needs the store itself.
func (s *Store) Subscribe(observer port.CartObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, observer)
}

// AddItem merges candidate into the cart. Observers get the candidate itself
// through ItemAdded, so the toast names what was just added even when it
// merged into an entry with a different display name.
func (s *Store) AddItem(ctx context.Context, candidate domain.LineItem) {
	candidate = candidate.Normalize()
	if candidate.ID == "" {
		candidate.ID = s.newID()
	}

	s.mu.Lock()
	s.cart.Add(candidate)
	change, observers := s.persistLocked(ctx, domain.OpAdd, candidate.ID)
	s.mu.Unlock()

	for _, o := range observers {
		o.CartChanged(ctx, change)
		o.ItemAdded(ctx, candidate)
	}
}

// RemoveItem persists and notifies even when id is not in the cart.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	s.cart.Remove(id)
	change, observers := s.persistLocked(ctx, domain.OpRemove, id)
	s.mu.Unlock()

	s.notify(ctx, observers, change)
}

// SetQuantity is a no-op for an unknown id. A quantity of zero or less removes the item.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) {
	id = strings.TrimSpace(id)
	op := domain.OpSetQuantity
	if quantity <= 0 {
		op = domain.OpRemove
	}

	s.mu.Lock()
	if !s.cart.SetQuantity(id, quantity) {
		s.mu.Unlock()
		return
	}
	change, observers := s.persistLocked(ctx, op, id)
	s.mu.Unlock()

	s.notify(ctx, observers, change)
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	change, observers := s.persistLocked(ctx, domain.OpClear, "")
	s.mu.Unlock()

	s.notify(ctx, observers, change)
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Total()
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.ItemCount()
}

func (s *Store) Items() []domain.LineItem {
	return s.Snapshot().Items
}

func (s *Store) Snapshot() domain.Cart {
	cart, _ := s.VersionedSnapshot()
	return cart
}

// VersionedSnapshot returns a copy of the cart with the Seq of the last
// mutation applied to it. Zero means no mutation since hydration.
func (s *Store) VersionedSnapshot() (domain.Cart, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Clone(), s.seq
}

func (s *Store) Quantity(id string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cart.Find(id)
	return item.Quantity, ok
}

// persistLocked saves the full cart and stamps the change with the next Seq.
// A failed save is logged and the in-memory cart stays authoritative.
// Callers hold s.mu.
func (s *Store) persistLocked(ctx context.Context, op domain.Op, id string) (domain.CartChange, []port.CartObserver) {
	snapshot := s.cart.Clone()

	if err := s.storage.Save(ctx, snapshot.Items); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "items", snapshot.Len()), "cart save failed", err)
	}

	s.seq++
	change := domain.CartChange{Seq: s.seq, Op: op, ItemID: id, Cart: snapshot}

	observers := make([]port.CartObserver, len(s.observers))
	copy(observers, s.observers)

	return change, observers
}

func (s *Store) notify(ctx context.Context, observers []port.CartObserver, change domain.CartChange) {
	for _, o := range observers {
		o.CartChanged(ctx, change)
	}
}
