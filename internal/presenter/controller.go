package presenter

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-cart/internal/domain"
)

type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
)

var ErrUnknownAction = errors.New("unknown action")

// CartCommands is the mutating side of the cart store.
type CartCommands interface {
	AddItem(ctx context.Context, candidate domain.LineItem)
	RemoveItem(ctx context.Context, id string)
	SetQuantity(ctx context.Context, id string, quantity int)
	Clear(ctx context.Context)
	Quantity(id string) (int, bool)
}

type Handler func(ctx context.Context, id string)

// Controller binds one handler per per-item UI action when it is built.
type Controller struct {
	cart     CartCommands
	handlers map[Action]Handler
	newID    func() string
}

func NewController(cart CartCommands, newID func() string) *Controller {
	c := &Controller{
		cart:  cart,
		newID: newID,
	}
	c.handlers = map[Action]Handler{
		ActionIncrease: c.increase,
		ActionDecrease: c.decrease,
		ActionRemove:   c.cart.RemoveItem,
	}
	return c
}

func ParseAction(raw string) (Action, error) {
	switch a := Action(raw); a {
	case ActionIncrease, ActionDecrease, ActionRemove:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// Add turns trigger attributes into a line item and adds it.
func (c *Controller) Add(ctx context.Context, attrs domain.ProductAttributes) domain.LineItem {
	item := attrs.LineItem(c.newID)
	c.cart.AddItem(ctx, item)
	return item
}

func (c *Controller) Dispatch(ctx context.Context, action Action, id string) error {
	handler, ok := c.handlers[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	handler(ctx, id)
	return nil
}

func (c *Controller) Clear(ctx context.Context) {
	c.cart.Clear(ctx)
}

func (c *Controller) increase(ctx context.Context, id string) {
	if qty, ok := c.cart.Quantity(id); ok {
		c.cart.SetQuantity(ctx, id, qty+1)
	}
}

// decrease at quantity one removes the item.
func (c *Controller) decrease(ctx context.Context, id string) {
	if qty, ok := c.cart.Quantity(id); ok {
		c.cart.SetQuantity(ctx, id, qty-1)
	}
}
