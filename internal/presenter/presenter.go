// Package presenter turns cart state into what a storefront page shows: the
// badge, the "added" toast and the cart modal. It reads the store and calls its
// mutations; the only cart state it keeps is the newest change it has seen.
package presenter

import (
	"context"
	"sync"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"golang.org/x/text/currency"
)

// CartReader returns the cart together with the Seq of the last change applied
// to it.
type CartReader interface {
	VersionedSnapshot() (domain.Cart, uint64)
}

type Options struct {
	ModalTitle string
	Currency   currency.Unit
}

type Summary struct {
	Count        int
	Badge        string
	BadgeVisible bool
	Total        string
	Items        []ModalRow
}

// Presenter observes the store. It keeps the badge current and refreshes the
// open modal in place after every mutation. Changes delivered out of order are
// dropped by Seq.
type Presenter struct {
	mu      sync.Mutex
	reader  CartReader
	toaster *Toaster
	opts    Options

	seq   uint64
	cart  domain.Cart
	badge Badge
	modal *Modal
}

func New(reader CartReader, toaster *Toaster, opts Options) *Presenter {
	if opts.ModalTitle == "" {
		opts.ModalTitle = DefaultModalTitle
	}
	if opts.Currency == (currency.Unit{}) {
		opts.Currency = currency.USD
	}

	p := &Presenter{
		reader:  reader,
		toaster: toaster,
		opts:    opts,
	}
	cart, seq := reader.VersionedSnapshot()
	p.applyLocked(cart, seq)

	return p
}

// CartChanged ignores a change older than one already applied.
func (p *Presenter) CartChanged(_ context.Context, change domain.CartChange) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if change.Seq <= p.seq {
		return
	}
	p.applyLocked(change.Cart, change.Seq)
}

func (p *Presenter) ItemAdded(_ context.Context, item domain.LineItem) {
	if p.toaster != nil {
		p.toaster.Show(item.Name)
	}
}

func (p *Presenter) Badge() Badge {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.badge
}

// OpenModal returns the open modal, creating it on first call.
func (p *Presenter) OpenModal() *Modal {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.modal == nil {
		if cart, seq := p.reader.VersionedSnapshot(); seq > p.seq {
			p.applyLocked(cart, seq)
		}
		p.modal = NewModal(p.opts.ModalTitle, p.opts.Currency, p.cart)
	}
	return p.modal
}

func (p *Presenter) CloseModal() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.modal = nil
}

func (p *Presenter) Modal() (*Modal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.modal, p.modal != nil
}

func (p *Presenter) Summary() Summary {
	snapshot, _ := p.reader.VersionedSnapshot()
	badge := BadgeFor(snapshot.ItemCount())

	return Summary{
		Count:        snapshot.ItemCount(),
		Badge:        badge.Text,
		BadgeVisible: badge.Visible,
		Total:        domain.NewMoney(snapshot.Total(), p.opts.Currency).String(),
		Items:        NewModal(p.opts.ModalTitle, p.opts.Currency, snapshot).View().Rows,
	}
}

func (p *Presenter) applyLocked(cart domain.Cart, seq uint64) {
	p.seq = seq
	p.cart = cart
	p.badge = BadgeFor(cart.ItemCount())
	if p.modal != nil {
		p.modal.Refresh(cart)
	}
}
