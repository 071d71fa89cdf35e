package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type Op string

const (
	OpAdd         Op = "add"
	OpRemove      Op = "remove"
	OpSetQuantity Op = "set_quantity"
	OpClear       Op = "clear"
)

// Cart keeps line items in insertion order with unique IDs.
type Cart struct {
	Items []LineItem
}

// CartChange is delivered to observers after a mutation. Seq grows with every
// mutation of the same store, so a consumer can drop a change that arrives
// after a newer one.
type CartChange struct {
	Seq    uint64
	Op     Op
	ItemID string
	Cart   Cart
}

func NewCart(items []LineItem) Cart {
	var c Cart
	for _, item := range items {
		c.Add(item)
	}
	return c
}

// Add merges item into an existing entry with the same ID or appends it.
// It returns the resulting entry.
func (c *Cart) Add(item LineItem) LineItem {
	item = item.Normalize()

	if i := c.index(item.ID); i >= 0 {
		c.Items[i].Quantity = addQuantity(c.Items[i].Quantity, item.Quantity)
		return c.Items[i]
	}

	c.Items = append(c.Items, item)
	return item
}

func (c *Cart) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.Items = slices.Delete(c.Items, i, i+1)
	return true
}

// SetQuantity reports false when id is not in the cart.
// A quantity of zero or less removes the entry.
func (c *Cart) SetQuantity(id string, quantity int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = slices.Delete(c.Items, i, i+1)
		return true
	}
	c.Items[i].Quantity = quantity
	return true
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) Find(id string) (LineItem, bool) {
	if i := c.index(id); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count = addQuantity(count, item.Quantity)
	}
	return count
}

func (c Cart) Len() int {
	return len(c.Items)
}

func (c Cart) Clone() Cart {
	return Cart{Items: slices.Clone(c.Items)}
}

// index matches ids the way Normalize stores them.
func (c Cart) index(id string) int {
	id = strings.TrimSpace(id)
	return slices.IndexFunc(c.Items, func(item LineItem) bool {
		return item.ID == id
	})
}
