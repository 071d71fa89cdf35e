package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
)

func TestProductAttributesLineItem(t *testing.T) {
	fixedID := func() string { return "generated" }

	tests := []struct {
		name  string
		attrs domain.ProductAttributes
		want  domain.LineItem
	}{
		{
			name: "all attributes present: ok",
			attrs: domain.ProductAttributes{
				ProductID:       "frag001",
				ProductName:     "Chanel No. 5",
				ProductPrice:    "120.00",
				ProductImage:    "/images/chanel.jpg",
				ProductCategory: "floral",
			},
			want: domain.LineItem{
				ID:        "frag001",
				Name:      "Chanel No. 5",
				UnitPrice: decimal.RequireFromString("120.00"),
				ImageRef:  "/images/chanel.jpg",
				Category:  "floral",
				Quantity:  1,
			},
		},
		{
			name:  "nothing present: defaults",
			attrs: domain.ProductAttributes{},
			want: domain.LineItem{
				ID:        "generated",
				Name:      domain.DefaultProductName,
				UnitPrice: decimal.Zero,
				Category:  domain.DefaultProductCategory,
				Quantity:  1,
			},
		},
		{
			name:  "malformed price: zero",
			attrs: domain.ProductAttributes{ProductID: "x", ProductPrice: "twelve"},
			want: domain.LineItem{
				ID:        "x",
				Name:      domain.DefaultProductName,
				UnitPrice: decimal.Zero,
				Category:  domain.DefaultProductCategory,
				Quantity:  1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.attrs.LineItem(fixedID)

			diff := cmp.Diff(tt.want, got, cmp.Comparer(func(x, y decimal.Decimal) bool {
				return x.Equal(y)
			}))
			assert.Empty(t, diff)
		})
	}
}

func TestProductAttributesGeneratesUniqueIDs(t *testing.T) {
	a := domain.ProductAttributes{}.LineItem(nil)
	b := domain.ProductAttributes{}.LineItem(nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestParsePrice(t *testing.T) {
	assert.True(t, domain.ParsePrice(" 9.99 ").Equal(decimal.RequireFromString("9.99")))
	assert.True(t, domain.ParsePrice("-1").IsZero())
	assert.True(t, domain.ParsePrice("").IsZero())
	assert.True(t, domain.ParsePrice("abc").IsZero())
	assert.True(t, domain.ParsePrice("1e5000000").IsZero())
	assert.True(t, domain.ParsePrice("1e-40").IsZero())
	assert.True(t, domain.ParsePrice("1234567890123").IsZero())
	assert.Equal(t, "1.23", domain.ParsePrice("1.23e0").StringFixed(2))
}

func TestMoneyString(t *testing.T) {
	m := domain.NewMoney(decimal.NewFromInt(20), currency.USD)
	assert.Equal(t, "USD 20.00", m.String())
}
