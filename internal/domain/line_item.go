package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// prices beyond these bounds are treated as malformed
	maxPriceIntegerDigits = 12
	maxPriceInputScale    = 18
	priceScale            = 8
)

type LineItem struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Category  string
	Quantity  int
}

// Normalize trims the text fields, coerces an out-of-range price to zero and a
// quantity below one to one.
func (i LineItem) Normalize() LineItem {
	i.ID = strings.TrimSpace(i.ID)
	i.Name = strings.TrimSpace(i.Name)
	i.ImageRef = strings.TrimSpace(i.ImageRef)
	i.Category = strings.TrimSpace(i.Category)
	i.UnitPrice = SanitizePrice(i.UnitPrice)
	if i.Quantity < 1 {
		i.Quantity = 1
	}
	return i
}

func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SanitizePrice returns zero for a negative price or one with more than twelve
// integer digits, and rounds the rest to eight decimal places. The exponent is
// checked before anything scales the value.
func SanitizePrice(price decimal.Decimal) decimal.Decimal {
	if price.IsNegative() {
		return decimal.Zero
	}

	exp := int(price.Exponent())
	if exp > maxPriceIntegerDigits || exp < -maxPriceInputScale {
		return decimal.Zero
	}
	if price.NumDigits()+exp > maxPriceIntegerDigits {
		return decimal.Zero
	}

	if exp < -priceScale {
		return price.Round(priceScale)
	}
	return price
}

// addQuantity saturates at math.MaxInt; both operands are non-negative.
func addQuantity(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
