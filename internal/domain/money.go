package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

// String renders the amount with two decimals after the ISO code, e.g. "USD 20.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency.String(), m.Amount.StringFixed(2))
}
