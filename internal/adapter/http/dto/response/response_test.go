package response

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"laundry_desk/internal/domain/analytics"
	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase"
)

func TestFromOrder_ActiveIsPricedLive(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	o := entities.Order{
		ID:     "ord-1",
		Status: entities.OrderStatusWaiting,
		Items: []entities.LineItem{
			{ServiceID: "s1", ServiceName: "Shirt", UnitPrice: decimal.RequireFromString("150"), PricingMode: entities.PricingModePerUnit, Quantity: "3"},
			{ServiceID: "s2", ServiceName: "Rug", UnitPrice: decimal.RequireFromString("500.5"), PricingMode: entities.PricingModePerArea, Length: "2", Width: "1.5"},
		},
		Total:     decimal.RequireFromString("1"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := FromOrder(o, "DA")
	if res.Total.Amount != "1951.5" {
		t.Fatalf("expected live total 1951.5, got %s", res.Total.Amount)
	}
	if res.Total.Display != "1,951 DA" {
		t.Fatalf("unexpected display %q", res.Total.Display)
	}
	if res.Items[0].LineTotal == nil || res.Items[0].LineTotal.Amount != "450" {
		t.Fatalf("unexpected line total: %+v", res.Items[0].LineTotal)
	}
	if res.Status != "Waiting" {
		t.Fatalf("unexpected status %s", res.Status)
	}
}

func TestFromOrder_TerminalKeepsFrozenTotal(t *testing.T) {
	closed := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	o := entities.Order{
		ID:     "ord-2",
		Status: entities.OrderStatusDelivered,
		Items: []entities.LineItem{
			{ServiceID: "s1", UnitPrice: decimal.RequireFromString("150"), PricingMode: entities.PricingModePerUnit, Quantity: "bad"},
		},
		Total:    decimal.RequireFromString("300"),
		ClosedAt: &closed,
	}

	res := FromOrder(o, "")
	if res.Total.Amount != "300" || res.Total.Display != "300" {
		t.Fatalf("unexpected total: %+v", res.Total)
	}
	if res.Items[0].LineTotal != nil {
		t.Fatalf("expected no line total for unpriceable item")
	}
	if res.ClosedAt == nil || !res.ClosedAt.Equal(closed) {
		t.Fatalf("closed_at not mapped")
	}
}

func TestFromCost(t *testing.T) {
	c := entities.Cost{ID: "c1", Name: "Soap", Price: decimal.RequireFromString("35.5"), Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ReportedBy: "Amina"}
	res := FromCost(c, "DA")
	if res.Date != "2024-03-05" || res.Price.Amount != "35.5" || res.Price.Display != "35 DA" {
		t.Fatalf("unexpected cost response: %+v", res)
	}
}

func TestFromReport(t *testing.T) {
	r := usecase.PeriodReport{
		Report: analytics.Report{
			Period:  analytics.PeriodDay,
			Labels:  []string{"05/03"},
			Revenue: analytics.Series{Values: []decimal.Decimal{decimal.RequireFromString("10.5")}, AllNonNegative: true},
			Profit:  analytics.Series{Values: []decimal.Decimal{decimal.RequireFromString("-2")}},
			ServiceBreakdown: []analytics.Share{
				{Key: "s1", Name: "Shirt", Total: decimal.RequireFromString("10.5"), Percent: decimal.NewFromInt(100), Color: "#f00"},
			},
		},
	}

	res := FromReport(r, "DA")
	if res.Period != "day" {
		t.Fatalf("unexpected period %s", res.Period)
	}
	if res.Revenue.Values[0] != "10.5" || res.Revenue.Total.Amount != "10.5" {
		t.Fatalf("unexpected revenue: %+v", res.Revenue)
	}
	if res.Profit.AllNonNegative || res.Profit.Total.Amount != "-2" {
		t.Fatalf("unexpected profit: %+v", res.Profit)
	}
	if res.ServiceBreakdown[0].Percent != "100.00" {
		t.Fatalf("unexpected percent %s", res.ServiceBreakdown[0].Percent)
	}
}
