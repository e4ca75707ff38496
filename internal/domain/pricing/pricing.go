// Package pricing turns order line items into money. Every function here is
// pure and safe to call concurrently.
package pricing

import (
	"errors"
	"fmt"
	"regexp"

	"laundry_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrUnknownPricingMode = errors.New("unknown pricing mode")
)

var decimalPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// IsDecimal reports whether v is a non-negative number with at most two
// fraction digits. It is the single format rule for prices and measurements.
func IsDecimal(v string) bool {
	return decimalPattern.MatchString(v)
}

// ParseAmount validates and parses a price or measurement.
func ParseAmount(v string) (decimal.Decimal, error) {
	if !IsDecimal(v) {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, v)
	}
	return decimal.RequireFromString(v), nil
}

// InvalidLineError points at the line item that made an order total invalid.
type InvalidLineError struct {
	Index int
	Err   error
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("line item %d: %v", e.Index, e.Err)
}

func (e *InvalidLineError) Unwrap() error { return e.Err }

// LineItemTotal prices one line item against a service.
func LineItemTotal(item entities.LineItem, svc entities.Service) (decimal.Decimal, error) {
	switch svc.PricingMode {
	case entities.PricingModePerArea:
		length, err := ParseAmount(item.Length)
		if err != nil {
			return decimal.Decimal{}, err
		}
		width, err := ParseAmount(item.Width)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return length.Mul(width).Mul(svc.Price), nil
	case entities.PricingModePerUnit:
		qty, err := ParseAmount(item.Quantity)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return qty.Mul(svc.Price), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownPricingMode, svc.PricingMode)
	}
}

// LineItemTotalSnapshot prices a line item with the pricing captured on it.
func LineItemTotalSnapshot(item entities.LineItem) (decimal.Decimal, error) {
	return LineItemTotal(item, item.Service())
}

// OrderTotal sums every line item of the order. A single invalid line makes
// the whole total invalid; it is never counted as zero.
func OrderTotal(order entities.Order) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, item := range order.Items {
		v, err := LineItemTotalSnapshot(item)
		if err != nil {
			return decimal.Decimal{}, &InvalidLineError{Index: i, Err: err}
		}
		total = total.Add(v)
	}
	return total, nil
}

// OrderValue is the revenue an order stands for: the frozen total once it is
// delivered or deleted, the live total otherwise.
func OrderValue(order entities.Order) (decimal.Decimal, error) {
	if order.Partition() != entities.PartitionActive {
		return order.Total, nil
	}
	return OrderTotal(order)
}
