package response

import (
	"github.com/shopspring/decimal"

	"laundry_desk/internal/domain/pricing"
)

// Money carries the exact amount and its human rendering.
type Money struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

func NewMoney(d decimal.Decimal, currency string) Money {
	return Money{Amount: d.String(), Display: pricing.Display(d, currency)}
}
