package analytics

import (
	"hash/fnv"
	"sort"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// Series is one value per bucket.
type Series struct {
	Values         []decimal.Decimal `json:"values"`
	AllNonNegative bool              `json:"all_non_negative"`
}

func newSeries(values []decimal.Decimal) Series {
	s := Series{Values: values, AllNonNegative: true}
	for _, v := range values {
		if v.IsNegative() {
			s.AllNonNegative = false
			break
		}
	}
	return s
}

// Sum adds every value of the series.
func (s Series) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.Values {
		total = total.Add(v)
	}
	return total
}

type Totals struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// Share is one slice of a category breakdown.
type Share struct {
	Key     string          `json:"key"`
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
	Percent decimal.Decimal `json:"percent"`
	Color   string          `json:"color"`
}

// Report is everything a period chart needs.
type Report struct {
	Period           Period   `json:"period"`
	Buckets          []Window `json:"buckets"`
	Labels           []string `json:"labels"`
	Revenue          Series   `json:"revenue"`
	Expenses         Series   `json:"expenses"`
	Profit           Series   `json:"profit"`
	Totals           Totals   `json:"totals"`
	ServiceBreakdown []Share  `json:"service_breakdown"`
	ExpenseBreakdown []Share  `json:"expense_breakdown"`
}

// Bucket aggregates orders (revenue) and costs (expenses) over the period
// around ref.
func Bucket(orders []entities.Order, costs []entities.Cost, period Period, ref time.Time) (Report, error) {
	buckets, err := Buckets(period, ref)
	if err != nil {
		return Report{}, err
	}
	revenue, err := RevenueSeries(orders, buckets)
	if err != nil {
		return Report{}, err
	}
	expenses := ExpenseSeries(costs, buckets)
	profit := ProfitSeries(revenue, expenses)
	services, err := ServiceBreakdown(orders, buckets)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Period:   period,
		Buckets:  buckets,
		Labels:   Labels(buckets),
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   profit,
		Totals: Totals{
			Revenue:  revenue.Sum(),
			Expenses: expenses.Sum(),
			Profit:   profit.Sum(),
		},
		ServiceBreakdown: services,
		ExpenseBreakdown: ExpenseBreakdown(costs, buckets),
	}, nil
}

func zeros(n int) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = decimal.Zero
	}
	return out
}

// costDay pins a day-granular cost date into the buckets' location.
func costDay(c entities.Cost, loc *time.Location) time.Time {
	y, m, d := c.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func location(buckets []Window) *time.Location {
	if len(buckets) == 0 {
		return time.UTC
	}
	return buckets[0].Start.Location()
}

// RevenueSeries sums order values per bucket, by creation date.
func RevenueSeries(orders []entities.Order, buckets []Window) (Series, error) {
	values := zeros(len(buckets))
	loc := location(buckets)
	for _, o := range orders {
		i := indexOf(buckets, o.CreatedAt.In(loc))
		if i < 0 {
			continue
		}
		v, err := pricing.OrderValue(o)
		if err != nil {
			return Series{}, err
		}
		values[i] = values[i].Add(v)
	}
	return newSeries(values), nil
}

// ExpenseSeries sums cost prices per bucket.
func ExpenseSeries(costs []entities.Cost, buckets []Window) Series {
	values := zeros(len(buckets))
	loc := location(buckets)
	for _, c := range costs {
		if i := indexOf(buckets, costDay(c, loc)); i >= 0 {
			values[i] = values[i].Add(c.Price)
		}
	}
	return newSeries(values)
}

// ProfitSeries is revenue minus expenses, bucket by bucket.
func ProfitSeries(revenue, expenses Series) Series {
	n := len(revenue.Values)
	if len(expenses.Values) > n {
		n = len(expenses.Values)
	}
	values := zeros(n)
	for i := range values {
		if i < len(revenue.Values) {
			values[i] = values[i].Add(revenue.Values[i])
		}
		if i < len(expenses.Values) {
			values[i] = values[i].Sub(expenses.Values[i])
		}
	}
	return newSeries(values)
}

// palette is the legend palette used by the mobile charts.
var palette = []string{
	"#4CAF50",
	"#FF9800",
	"#F44336",
	"#03A9F4",
	"#9C27B0",
	"#FFC107",
	"#009688",
	"#E91E63",
}

// PaletteColor maps a category key to a stable legend colour.
func PaletteColor(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return palette[h.Sum32()%uint32(len(palette))]
}

var hundred = decimal.NewFromInt(100)

type category struct {
	name  string
	total decimal.Decimal
}

// shares turns per-category totals into percentages rounded to 2 places.
// A zero grand total yields zero shares.
func shares(cats map[string]*category) []Share {
	grand := decimal.Zero
	for _, c := range cats {
		grand = grand.Add(c.total)
	}
	out := make([]Share, 0, len(cats))
	for key, c := range cats {
		pct := decimal.Zero
		if !grand.IsZero() {
			pct = c.total.Div(grand).Mul(hundred).Round(2)
		}
		out = append(out, Share{Key: key, Name: c.name, Total: c.total, Percent: pct, Color: PaletteColor(key)})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ServiceBreakdown splits order revenue inside the buckets by service.
func ServiceBreakdown(orders []entities.Order, buckets []Window) ([]Share, error) {
	cats := map[string]*category{}
	loc := location(buckets)
	for _, o := range orders {
		if indexOf(buckets, o.CreatedAt.In(loc)) < 0 {
			continue
		}
		for _, item := range o.Items {
			v, err := pricing.LineItemTotalSnapshot(item)
			if err != nil {
				return nil, err
			}
			c, ok := cats[item.ServiceID]
			if !ok {
				c = &category{name: item.ServiceName, total: decimal.Zero}
				cats[item.ServiceID] = c
			}
			c.total = c.total.Add(v)
		}
	}
	return shares(cats), nil
}

// ExpenseBreakdown splits costs inside the buckets by expense name.
func ExpenseBreakdown(costs []entities.Cost, buckets []Window) []Share {
	cats := map[string]*category{}
	loc := location(buckets)
	for _, c := range costs {
		if indexOf(buckets, costDay(c, loc)) < 0 {
			continue
		}
		cat, ok := cats[c.Name]
		if !ok {
			cat = &category{name: c.Name, total: decimal.Zero}
			cats[c.Name] = cat
		}
		cat.total = cat.total.Add(c.Price)
	}
	return shares(cats)
}
