package pricing

import (
	"errors"
	"testing"

	"laundry_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perUnit(price string) entities.Service {
	return entities.Service{ID: "svc-unit", Name: "Ironing", Price: decimal.RequireFromString(price), PricingMode: entities.PricingModePerUnit}
}

func perArea(price string) entities.Service {
	return entities.Service{ID: "svc-area", Name: "Carpet", Price: decimal.RequireFromString(price), PricingMode: entities.PricingModePerArea}
}

func TestIsDecimal(t *testing.T) {
	for _, v := range []string{"0", "12", "12.5", "12.50", "007"} {
		assert.True(t, IsDecimal(v), v)
	}
	for _, v := range []string{"", "abc", "-1", "1.234", "1.", ".5", "1,5", " 1"} {
		assert.False(t, IsDecimal(v), v)
	}
}

func TestLineItemTotal(t *testing.T) {
	t.Run("per area", func(t *testing.T) {
		got, err := LineItemTotal(entities.LineItem{Length: "2", Width: "3"}, perArea("50"))
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(300)), got.String())
	})

	t.Run("per unit", func(t *testing.T) {
		got, err := LineItemTotal(entities.LineItem{Quantity: "4"}, perUnit("12.5"))
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(50)), got.String())
	})

	t.Run("decimal measurements keep precision", func(t *testing.T) {
		got, err := LineItemTotal(entities.LineItem{Length: "0.1", Width: "0.2"}, perArea("3"))
		require.NoError(t, err)
		assert.Equal(t, "0.06", got.String())
	})

	t.Run("invalid measurements", func(t *testing.T) {
		cases := []struct {
			name string
			item entities.LineItem
			svc  entities.Service
		}{
			{"non numeric quantity", entities.LineItem{Quantity: "abc"}, perUnit("10")},
			{"negative quantity", entities.LineItem{Quantity: "-1"}, perUnit("10")},
			{"three decimals", entities.LineItem{Quantity: "1.005"}, perUnit("10")},
			{"missing width", entities.LineItem{Length: "2"}, perArea("10")},
			{"bad length", entities.LineItem{Length: "x", Width: "2"}, perArea("10")},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := LineItemTotal(tc.item, tc.svc)
				assert.ErrorIs(t, err, ErrInvalidQuantity)
			})
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := LineItemTotal(entities.LineItem{Quantity: "1"}, entities.Service{PricingMode: "perHour"})
		assert.ErrorIs(t, err, ErrUnknownPricingMode)
	})
}

func line(svc entities.Service, qty, length, width string) entities.LineItem {
	return entities.LineItem{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		UnitPrice:   svc.Price,
		PricingMode: svc.PricingMode,
		Quantity:    qty,
		Length:      length,
		Width:       width,
	}
}

func TestOrderTotal(t *testing.T) {
	t.Run("sums every line", func(t *testing.T) {
		o := entities.Order{Items: []entities.LineItem{
			line(perUnit("25"), "4", "", ""),
			line(perArea("50"), "", "2", "3"),
		}}
		got, err := OrderTotal(o)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.NewFromInt(400)), got.String())
	})

	t.Run("one invalid line invalidates the order", func(t *testing.T) {
		o := entities.Order{Items: []entities.LineItem{
			line(perUnit("25"), "4", "", ""),
			line(perUnit("10"), "abc", "", ""),
		}}
		got, err := OrderTotal(o)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
		var lineErr *InvalidLineError
		require.ErrorAs(t, err, &lineErr)
		assert.Equal(t, 1, lineErr.Index)
		assert.True(t, got.IsZero())
	})

	t.Run("empty order is zero", func(t *testing.T) {
		got, err := OrderTotal(entities.Order{})
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})
}

func TestOrderValue(t *testing.T) {
	items := []entities.LineItem{line(perUnit("10"), "2", "", "")}

	active := entities.Order{Status: entities.OrderStatusReady, Items: items}
	v, err := OrderValue(active)
	require.NoError(t, err)
	assert.Equal(t, "20", v.String())

	delivered := entities.Order{Status: entities.OrderStatusDelivered, Items: items, Total: decimal.NewFromInt(15)}
	v, err = OrderValue(delivered)
	require.NoError(t, err)
	assert.Equal(t, "15", v.String())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "299", Display(decimal.RequireFromString("299.99"), ""))
	assert.Equal(t, "1,250 DA", Display(decimal.RequireFromString("1250.4"), "DA"))
}
