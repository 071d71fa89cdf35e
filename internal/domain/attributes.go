package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultProductName     = "Fragrance"
	DefaultProductCategory = "fragrance"
)

// ProductAttributes are the raw values carried by an "add to cart" trigger.
// Any of them may be missing or malformed.
type ProductAttributes struct {
	ProductID       string
	ProductName     string
	ProductPrice    string
	ProductImage    string
	ProductCategory string
}

func NewItemID() string {
	return uuid.NewString()
}

// LineItem converts attributes into a single-quantity line item, falling back
// to defaults for anything missing. newID may be nil.
func (a ProductAttributes) LineItem(newID func() string) LineItem {
	if newID == nil {
		newID = NewItemID
	}

	return LineItem{
		ID:        orDefault(a.ProductID, newID),
		Name:      orDefault(a.ProductName, constant(DefaultProductName)),
		UnitPrice: ParsePrice(a.ProductPrice),
		ImageRef:  strings.TrimSpace(a.ProductImage),
		Category:  orDefault(a.ProductCategory, constant(DefaultProductCategory)),
		Quantity:  1,
	}
}

// ParsePrice returns zero for empty, unparseable, negative or out-of-range input.
func ParsePrice(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return SanitizePrice(price)
}

func orDefault(value string, fallback func() string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback()
}

func constant(s string) func() string {
	return func() string { return s }
}
