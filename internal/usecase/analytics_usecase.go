package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry_desk/internal/domain/analytics"
	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidPeriod = errors.New("invalid period")

// PeriodReport is a chart for one period. Cancelled is the revenue of
// deleted orders over the same buckets; it never enters Profit.
type PeriodReport struct {
	analytics.Report
	Cancelled analytics.Series `json:"cancelled"`
}

// IAnalyticsUseCase computes charts and summaries from the terminal
// partitions and the expense ledger.
type IAnalyticsUseCase interface {
	Report(ctx context.Context, period string, ref time.Time) (PeriodReport, error)
	Today(ctx context.Context, ref time.Time) (analytics.TodaySummary, error)
	Audit(ctx context.Context, start, end time.Time) (analytics.AuditReport, error)
}

type AnalyticsUseCase struct {
	orders interfaces.IOrderRepository
	costs  interfaces.ICostRepository
	loc    *time.Location
	log    *zap.Logger
	now    func() time.Time
}

var _ IAnalyticsUseCase = (*AnalyticsUseCase)(nil)

func NewAnalyticsUseCase(orders interfaces.IOrderRepository, costs interfaces.ICostRepository, loc *time.Location, logger *zap.Logger) *AnalyticsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsUseCase{
		orders: orders,
		costs:  costs,
		loc:    loc,
		log:    logger.Named("analytics"),
		now:    time.Now,
	}
}

type sources struct {
	delivered []entities.Order
	deleted   []entities.Order
	costs     []entities.Cost
}

// load reads the three sources concurrently.
func (u *AnalyticsUseCase) load(ctx context.Context) (sources, error) {
	var s sources
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s.delivered, err = u.orders.ListByPartition(gctx, entities.PartitionDelivered)
		return err
	})
	g.Go(func() error {
		var err error
		s.deleted, err = u.orders.ListByPartition(gctx, entities.PartitionDeleted)
		return err
	})
	g.Go(func() error {
		var err error
		s.costs, err = u.costs.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Error("snapshot load failed", zap.Error(err))
		return sources{}, persistenceErr(err)
	}
	return s, nil
}

// pin keeps the calendar day of t in the configured location. A zero t
// means now.
func (u *AnalyticsUseCase) pin(t time.Time) time.Time {
	if t.IsZero() {
		return u.now().In(u.loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, u.loc)
}

func (u *AnalyticsUseCase) Report(ctx context.Context, period string, ref time.Time) (PeriodReport, error) {
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return PeriodReport{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	s, err := u.load(ctx)
	if err != nil {
		return PeriodReport{}, err
	}

	report, err := analytics.Bucket(s.delivered, s.costs, p, u.pin(ref))
	if err != nil {
		return PeriodReport{}, err
	}
	cancelled, err := analytics.RevenueSeries(s.deleted, report.Buckets)
	if err != nil {
		return PeriodReport{}, err
	}
	return PeriodReport{Report: report, Cancelled: cancelled}, nil
}

func (u *AnalyticsUseCase) Today(ctx context.Context, ref time.Time) (analytics.TodaySummary, error) {
	s, err := u.load(ctx)
	if err != nil {
		return analytics.TodaySummary{}, err
	}
	return analytics.Today(s.delivered, s.deleted, s.costs, u.pin(ref))
}

func (u *AnalyticsUseCase) Audit(ctx context.Context, start, end time.Time) (analytics.AuditReport, error) {
	if start.IsZero() || end.IsZero() {
		return analytics.AuditReport{}, ErrInvalidDateRange
	}
	from, to := u.pin(start), u.pin(end)
	if to.Before(from) {
		return analytics.AuditReport{}, ErrInvalidDateRange
	}
	s, err := u.load(ctx)
	if err != nil {
		return analytics.AuditReport{}, err
	}
	return analytics.Audit(s.delivered, s.deleted, s.costs, from, to)
}
