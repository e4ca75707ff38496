package response

import (
	"time"

	"laundry_desk/internal/domain/analytics"
	"laundry_desk/internal/usecase"
)

type SeriesResponse struct {
	Values         []string `json:"values"`
	AllNonNegative bool     `json:"all_non_negative"`
	Total          Money    `json:"total"`
}

func fromSeries(s analytics.Series, currency string) SeriesResponse {
	values := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		values = append(values, v.String())
	}
	return SeriesResponse{Values: values, AllNonNegative: s.AllNonNegative, Total: NewMoney(s.Sum(), currency)}
}

type ShareResponse struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Total   Money  `json:"total"`
	Percent string `json:"percent"`
	Color   string `json:"color"`
}

func fromShares(shares []analytics.Share, currency string) []ShareResponse {
	out := make([]ShareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, ShareResponse{
			Key:     s.Key,
			Name:    s.Name,
			Total:   NewMoney(s.Total, currency),
			Percent: s.Percent.StringFixed(2),
			Color:   s.Color,
		})
	}
	return out
}

type ReportResponse struct {
	Period           string             `json:"period"`
	Buckets          []analytics.Window `json:"buckets"`
	Labels           []string           `json:"labels"`
	Revenue          SeriesResponse     `json:"revenue"`
	Expenses         SeriesResponse     `json:"expenses"`
	Profit           SeriesResponse     `json:"profit"`
	Cancelled        SeriesResponse     `json:"cancelled"`
	ServiceBreakdown []ShareResponse    `json:"service_breakdown"`
	ExpenseBreakdown []ShareResponse    `json:"expense_breakdown"`
}

func FromReport(r usecase.PeriodReport, currency string) ReportResponse {
	return ReportResponse{
		Period:           string(r.Period),
		Buckets:          r.Buckets,
		Labels:           r.Labels,
		Revenue:          fromSeries(r.Revenue, currency),
		Expenses:         fromSeries(r.Expenses, currency),
		Profit:           fromSeries(r.Profit, currency),
		Cancelled:        fromSeries(r.Cancelled, currency),
		ServiceBreakdown: fromShares(r.ServiceBreakdown, currency),
		ExpenseBreakdown: fromShares(r.ExpenseBreakdown, currency),
	}
}

type TodayResponse struct {
	Day              string `json:"day"`
	DeliveredCount   int    `json:"delivered_count"`
	DeliveredRevenue Money  `json:"delivered_revenue"`
	DeletedCount     int    `json:"deleted_count"`
	DeletedRevenue   Money  `json:"deleted_revenue"`
	Expenses         Money  `json:"expenses"`
	NetProfit        Money  `json:"net_profit"`
}

func FromToday(s analytics.TodaySummary, currency string) TodayResponse {
	return TodayResponse{
		Day:              s.Day.Format("2006-01-02"),
		DeliveredCount:   s.DeliveredCount,
		DeliveredRevenue: NewMoney(s.DeliveredRevenue, currency),
		DeletedCount:     s.DeletedCount,
		DeletedRevenue:   NewMoney(s.DeletedRevenue, currency),
		Expenses:         NewMoney(s.Expenses, currency),
		NetProfit:        NewMoney(s.NetProfit, currency),
	}
}

type AuditResponse struct {
	Start          time.Time       `json:"start"`
	End            time.Time       `json:"end"`
	Delivered      []OrderResponse `json:"delivered"`
	DeliveredTotal Money           `json:"delivered_total"`
	Deleted        []OrderResponse `json:"deleted"`
	DeletedTotal   Money           `json:"deleted_total"`
	Costs          []CostResponse  `json:"costs"`
	CostsTotal     Money           `json:"costs_total"`
}

func FromAudit(a analytics.AuditReport, currency string) AuditResponse {
	return AuditResponse{
		Start:          a.Start,
		End:            a.End,
		Delivered:      FromOrders(a.Delivered, currency),
		DeliveredTotal: NewMoney(a.DeliveredTotal, currency),
		Deleted:        FromOrders(a.Deleted, currency),
		DeletedTotal:   NewMoney(a.DeletedTotal, currency),
		Costs:          FromCosts(a.Costs, currency),
		CostsTotal:     NewMoney(a.CostsTotal, currency),
	}
}
