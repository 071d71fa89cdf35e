package presenter_test

import (
	"bytes"
	"testing"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/nikolayk812/storefront-cart/internal/presenter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestBadgeFor(t *testing.T) {
	assert.Equal(t, presenter.Badge{Text: "0"}, presenter.BadgeFor(0))
	assert.Equal(t, presenter.Badge{Text: "3", Visible: true}, presenter.BadgeFor(3))
}

func TestModalEmpty(t *testing.T) {
	modal := presenter.NewModal("", currency.USD, domain.Cart{})

	view := modal.View()
	assert.True(t, view.Empty)
	assert.Equal(t, presenter.DefaultModalTitle, view.Title)
	assert.Equal(t, "USD 0.00", view.Total)

	var buf bytes.Buffer
	require.NoError(t, modal.Render(&buf))
	assert.Contains(t, buf.String(), presenter.EmptyModalMessage)
	assert.NotContains(t, buf.String(), "cart-item")
}

func TestModalRows(t *testing.T) {
	cart := domain.NewCart([]domain.LineItem{
		lineItem("a", "10", 2),
		lineItem("b", "2.5", 1),
	})

	view := presenter.NewModal("Wishlist", currency.USD, cart).View()

	require.Len(t, view.Rows, 2)
	assert.Equal(t, presenter.ModalRow{
		ID:        "a",
		Name:      "item a",
		Category:  domain.DefaultProductCategory,
		UnitPrice: "USD 10.00",
		Quantity:  2,
		LineTotal: "USD 20.00",
	}, view.Rows[0])
	assert.Equal(t, "USD 22.50", view.Total)
	assert.Equal(t, "Proceeding to checkout with 3 items totaling USD 22.50", view.CheckoutSummary)
}

func TestModalRefreshInPlace(t *testing.T) {
	cart := domain.NewCart([]domain.LineItem{
		lineItem("a", "1", 1),
		lineItem("b", "1", 1),
		lineItem("c", "1", 1),
	})
	modal := presenter.NewModal("Wishlist", currency.USD, cart)
	before := modal.View().Revision

	cart.Remove("b")
	cart.SetQuantity("c", 5)
	cart.Add(lineItem("d", "1", 1))
	modal.Refresh(cart)

	view := modal.View()
	assert.Equal(t, before+1, view.Revision)
	assert.Equal(t, []string{"a", "c", "d"}, rowIDs(view.Rows))
	assert.Equal(t, 5, view.Rows[1].Quantity)
	assert.Equal(t, "USD 7.00", view.Total)

	cart.Clear()
	modal.Refresh(cart)
	assert.True(t, modal.View().Empty)
}

func TestModalRenderEscapes(t *testing.T) {
	cart := domain.NewCart([]domain.LineItem{{
		ID:        "x1",
		Name:      `<script>alert(1)</script>`,
		UnitPrice: decimal.NewFromInt(1),
		Quantity:  1,
	}})

	var buf bytes.Buffer
	require.NoError(t, presenter.NewModal("Wishlist", currency.USD, cart).Render(&buf))

	out := buf.String()
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `data-product-id="x1"`)
	assert.Contains(t, out, `action="/cart/items/x1/increase"`)
	assert.Contains(t, out, `action="/cart/clear"`)
}

func lineItem(id, price string, qty int) domain.LineItem {
	return domain.LineItem{
		ID:        id,
		Name:      "item " + id,
		UnitPrice: decimal.RequireFromString(price),
		Category:  domain.DefaultProductCategory,
		Quantity:  qty,
	}
}

func rowIDs(rows []presenter.ModalRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
