package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/nikolayk812/storefront-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// wire layout of one persisted line item; field names are part of the slot format
type wireItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    wirePrice `json:"price"`
	Image    string    `json:"image"`
	Category string    `json:"category"`
	Quantity int       `json:"quantity"`
}

// lenient read side of wireItem: any field may carry the wrong JSON type
type rawItem struct {
	ID       json.RawMessage `json:"id"`
	Name     json.RawMessage `json:"name"`
	Price    json.RawMessage `json:"price"`
	Image    json.RawMessage `json:"image"`
	Category json.RawMessage `json:"category"`
	Quantity json.RawMessage `json:"quantity"`
}

type wirePrice decimal.Decimal

// MarshalJSON writes the price as a bare JSON number.
func (p wirePrice) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(p).String()), nil
}

func EncodeItems(items []domain.LineItem) ([]byte, error) {
	wire := make([]wireItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, wireItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    wirePrice(item.UnitPrice),
			Image:    item.ImageRef,
			Category: item.Category,
			Quantity: item.Quantity,
		})
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return data, nil
}

// DecodeItems fails only when data is not a JSON array. Malformed entries are
// coerced (price 0, quantity 1), entries without an id are dropped and
// duplicate ids are merged.
func DecodeItems(data []byte) ([]domain.LineItem, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var cart domain.Cart
	for _, raw := range raws {
		var r rawItem
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}

		id := rawText(r.ID)
		if id == "" {
			continue
		}

		cart.Add(domain.LineItem{
			ID:        id,
			Name:      rawText(r.Name),
			UnitPrice: rawPrice(r.Price),
			ImageRef:  rawText(r.Image),
			Category:  rawText(r.Category),
			Quantity:  rawQuantity(r.Quantity),
		})
	}

	return cart.Items, nil
}

// rawText accepts a JSON string or number; anything else reads as empty.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	text := rawText(raw)
	if text == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func rawPrice(raw json.RawMessage) decimal.Decimal {
	price, ok := rawDecimal(raw)
	if !ok {
		return decimal.Zero
	}
	return domain.SanitizePrice(price)
}

var maxQuantity = decimal.NewFromInt(math.MaxInt)

// rawQuantity reads a count below one as one and clamps large counts to
// math.MaxInt. Integer digits are counted before comparing so an extreme
// exponent is never expanded.
func rawQuantity(raw json.RawMessage) int {
	qty, ok := rawDecimal(raw)
	if !ok || qty.Sign() <= 0 {
		return 1
	}

	intDigits := qty.NumDigits() + int(qty.Exponent())
	switch {
	case intDigits < 1:
		return 1
	case intDigits > 19 || qty.GreaterThanOrEqual(maxQuantity):
		return math.MaxInt
	case qty.LessThan(decimal.NewFromInt(1)):
		return 1
	}
	return int(qty.IntPart())
}
