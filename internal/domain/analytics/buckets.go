// Package analytics folds orders and costs into calendar buckets for charts
// and summaries. Calendar math happens in the location of the reference date.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Period is the span covered by a chart.
type Period string

const (
	PeriodDay       Period = "day"
	PeriodWeek      Period = "week"
	PeriodMonth     Period = "month"
	PeriodTrimester Period = "trimester"
	PeriodYear      Period = "year"
)

var ErrUnknownPeriod = errors.New("unknown period")

// ParsePeriod accepts the period names, case-insensitively.
func ParsePeriod(v string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(v))); p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodTrimester, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, v)
}

// Window is a half-open time window [Start, End).
type Window struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (b Window) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Buckets splits the period around ref into consecutive windows.
//
//   - day: the reference day
//   - week: seven days from the Sunday on or before ref
//   - month: one bucket per day, labelled "Week N" every 7th day and on the last day
//   - trimester: 7-day windows across the current 3-month block, the last one clipped
//   - year: one bucket per month
func Buckets(period Period, ref time.Time) ([]Window, error) {
	day := startOfDay(ref)
	y, m, _ := day.Date()
	loc := day.Location()

	switch period {
	case PeriodDay:
		return []Window{{Label: day.Format("02/01"), Start: day, End: day.AddDate(0, 0, 1)}}, nil

	case PeriodWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		out := make([]Window, 0, 7)
		for i := 0; i < 7; i++ {
			d := start.AddDate(0, 0, i)
			out = append(out, Window{Label: d.Format("Mon"), Start: d, End: d.AddDate(0, 0, 1)})
		}
		return out, nil

	case PeriodMonth:
		daysInMonth := time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
		out := make([]Window, 0, daysInMonth)
		for i := 1; i <= daysInMonth; i++ {
			d := time.Date(y, m, i, 0, 0, 0, 0, loc)
			label := ""
			if i%7 == 0 || i == daysInMonth {
				label = fmt.Sprintf("Week %d", (i+6)/7)
			}
			out = append(out, Window{Label: label, Start: d, End: d.AddDate(0, 0, 1)})
		}
		return out, nil

	case PeriodTrimester:
		firstMonth := time.Month((int(m)-1)/3*3 + 1)
		start := time.Date(y, firstMonth, 1, 0, 0, 0, 0, loc)
		blockEnd := time.Date(y, firstMonth+3, 1, 0, 0, 0, 0, loc)
		var out []Window
		for ws := start; ws.Before(blockEnd); ws = ws.AddDate(0, 0, 7) {
			end := ws.AddDate(0, 0, 7)
			if end.After(blockEnd) {
				end = blockEnd
			}
			label := ""
			if ws.Day() <= 7 {
				label = ws.Format("Jan")
			}
			out = append(out, Window{Label: label, Start: ws, End: end})
		}
		return out, nil

	case PeriodYear:
		out := make([]Window, 0, 12)
		for i := time.January; i <= time.December; i++ {
			s := time.Date(y, i, 1, 0, 0, 0, 0, loc)
			out = append(out, Window{Label: s.Format("Jan"), Start: s, End: s.AddDate(0, 1, 0)})
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
}

// indexOf finds the bucket holding t, or -1. Buckets must be sorted and
// contiguous, as Buckets returns them.
func indexOf(buckets []Window, t time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool { return t.Before(buckets[i].End) })
	if i < len(buckets) && buckets[i].Contains(t) {
		return i
	}
	return -1
}

// Labels returns the bucket labels in order.
func Labels(buckets []Window) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Label
	}
	return out
}
