package analytics

import (
	"errors"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

var ErrInvalidRange = errors.New("start date is after end date")

// TodaySummary is the dashboard header for the reference day. Cancelled
// revenue is reported but never enters the profit.
type TodaySummary struct {
	Day              time.Time       `json:"day"`
	DeliveredCount   int             `json:"delivered_count"`
	DeliveredRevenue decimal.Decimal `json:"delivered_revenue"`
	DeletedCount     int             `json:"deleted_count"`
	DeletedRevenue   decimal.Decimal `json:"deleted_revenue"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
}

func sumOrders(orders []entities.Order, keep func(time.Time) bool) (int, decimal.Decimal, []entities.Order, error) {
	total := decimal.Zero
	var kept []entities.Order
	for _, o := range orders {
		if !keep(o.CreatedAt) {
			continue
		}
		v, err := pricing.OrderValue(o)
		if err != nil {
			return 0, decimal.Decimal{}, nil, err
		}
		total = total.Add(v)
		kept = append(kept, o)
	}
	return len(kept), total, kept, nil
}

// Today computes the day summary around ref.
func Today(delivered, deleted []entities.Order, costs []entities.Cost, ref time.Time) (TodaySummary, error) {
	buckets, _ := Buckets(PeriodDay, ref)
	day := buckets[0]
	loc := day.Start.Location()
	inDay := func(t time.Time) bool { return day.Contains(t.In(loc)) }

	dCount, dRevenue, _, err := sumOrders(delivered, inDay)
	if err != nil {
		return TodaySummary{}, err
	}
	xCount, xRevenue, _, err := sumOrders(deleted, inDay)
	if err != nil {
		return TodaySummary{}, err
	}
	expenses := ExpenseSeries(costs, buckets).Sum()

	return TodaySummary{
		Day:              day.Start,
		DeliveredCount:   dCount,
		DeliveredRevenue: dRevenue,
		DeletedCount:     xCount,
		DeletedRevenue:   xRevenue,
		Expenses:         expenses,
		NetProfit:        dRevenue.Sub(expenses),
	}, nil
}

// AuditReport lists what happened between two calendar days, both included.
type AuditReport struct {
	Start          time.Time        `json:"start"`
	End            time.Time        `json:"end"`
	Delivered      []entities.Order `json:"delivered"`
	DeliveredTotal decimal.Decimal  `json:"delivered_total"`
	Deleted        []entities.Order `json:"deleted"`
	DeletedTotal   decimal.Decimal  `json:"deleted_total"`
	Costs          []entities.Cost  `json:"costs"`
	CostsTotal     decimal.Decimal  `json:"costs_total"`
}

// Audit filters terminal orders and costs to [start 00:00, end 23:59:59.999...].
func Audit(delivered, deleted []entities.Order, costs []entities.Cost, start, end time.Time) (AuditReport, error) {
	from := startOfDay(start)
	to := startOfDay(end.In(start.Location())).AddDate(0, 0, 1)
	if !from.Before(to) {
		return AuditReport{}, ErrInvalidRange
	}
	window := Window{Start: from, End: to}
	loc := from.Location()
	inRange := func(t time.Time) bool { return window.Contains(t.In(loc)) }

	_, dTotal, dKept, err := sumOrders(delivered, inRange)
	if err != nil {
		return AuditReport{}, err
	}
	_, xTotal, xKept, err := sumOrders(deleted, inRange)
	if err != nil {
		return AuditReport{}, err
	}

	cTotal := decimal.Zero
	var cKept []entities.Cost
	for _, c := range costs {
		if window.Contains(costDay(c, loc)) {
			cTotal = cTotal.Add(c.Price)
			cKept = append(cKept, c)
		}
	}

	return AuditReport{
		Start:          from,
		End:            to.Add(-time.Nanosecond),
		Delivered:      dKept,
		DeliveredTotal: dTotal,
		Deleted:        xKept,
		DeletedTotal:   xTotal,
		Costs:          cKept,
		CostsTotal:     cTotal,
	}, nil
}
