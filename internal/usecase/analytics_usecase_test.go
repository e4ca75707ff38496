package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry_desk/internal/domain/entities"
	mock_interfaces "laundry_desk/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func closedOrder(id string, status entities.OrderStatus, total int64, at time.Time) entities.Order {
	return entities.Order{ID: id, Status: status, Total: decimal.NewFromInt(total), CreatedAt: at}
}

func expectSources(orders *mock_interfaces.MockIOrderRepository, costs *mock_interfaces.MockICostRepository) {
	day := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	orders.EXPECT().ListByPartition(gomock.Any(), entities.PartitionDelivered).Return([]entities.Order{
		closedOrder("d1", entities.OrderStatusDelivered, 100, day),
		closedOrder("d2", entities.OrderStatusDelivered, 20, day.AddDate(0, 0, 2)),
	}, nil)
	orders.EXPECT().ListByPartition(gomock.Any(), entities.PartitionDeleted).Return([]entities.Order{
		closedOrder("x1", entities.OrderStatusDeleted, 40, day),
	}, nil)
	costs.EXPECT().List(gomock.Any()).Return([]entities.Cost{
		{ID: "c1", Name: "Soap", Price: decimal.NewFromInt(30), Date: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
	}, nil)
}

func TestAnalyticsUseCase_Report(t *testing.T) {
	t.Run("invalid period", func(t *testing.T) {
		uc := NewAnalyticsUseCase(nil, nil, nil, nil)
		if _, err := uc.Report(context.Background(), "decade", time.Time{}); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod, got %v", err)
		}
	})

	t.Run("week with cancelled revenue kept apart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		costs := mock_interfaces.NewMockICostRepository(ctrl)
		uc := NewAnalyticsUseCase(orders, costs, time.UTC, nil)
		expectSources(orders, costs)

		r, err := uc.Report(context.Background(), "week", time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Labels) != 7 || r.Labels[0] != "Sun" {
			t.Fatalf("unexpected labels %v", r.Labels)
		}
		if !r.Totals.Revenue.Equal(decimal.NewFromInt(120)) || !r.Totals.Profit.Equal(decimal.NewFromInt(90)) {
			t.Fatalf("unexpected totals %+v", r.Totals)
		}
		if !r.Cancelled.Values[1].Equal(decimal.NewFromInt(40)) {
			t.Fatalf("unexpected cancelled series %v", r.Cancelled.Values)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		costs := mock_interfaces.NewMockICostRepository(ctrl)
		uc := NewAnalyticsUseCase(orders, costs, time.UTC, nil)

		orders.EXPECT().ListByPartition(gomock.Any(), gomock.Any()).Return(nil, errors.New("db")).AnyTimes()
		costs.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

		if _, err := uc.Report(context.Background(), "day", time.Time{}); !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestAnalyticsUseCase_Today(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	costs := mock_interfaces.NewMockICostRepository(ctrl)
	uc := NewAnalyticsUseCase(orders, costs, time.UTC, nil)
	expectSources(orders, costs)

	s, err := uc.Today(context.Background(), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DeliveredCount != 1 || s.DeletedCount != 1 || !s.NetProfit.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestAnalyticsUseCase_Audit(t *testing.T) {
	t.Run("reversed range", func(t *testing.T) {
		uc := NewAnalyticsUseCase(nil, nil, time.UTC, nil)
		_, err := uc.Audit(context.Background(), time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("inclusive days", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		costs := mock_interfaces.NewMockICostRepository(ctrl)
		uc := NewAnalyticsUseCase(orders, costs, time.UTC, nil)
		expectSources(orders, costs)

		day := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
		r, err := uc.Audit(context.Background(), day.AddDate(0, 0, -2), day)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Delivered) != 2 || !r.DeliveredTotal.Equal(decimal.NewFromInt(120)) || len(r.Costs) != 1 {
			t.Fatalf("unexpected audit %+v", r)
		}
	})
}
