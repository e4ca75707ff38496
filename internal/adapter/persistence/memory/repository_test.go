package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"laundry_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_MoveToTerminalIsExclusive(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	_, err := repo.Create(ctx, entities.Order{ID: "o1", Status: entities.OrderStatusReady})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]entities.Order, 2)
	for i, to := range []entities.OrderStatus{entities.OrderStatusDelivered, entities.OrderStatusDeleted} {
		wg.Add(1)
		go func(i int, to entities.OrderStatus) {
			defer wg.Done()
			results[i], _ = repo.MoveToTerminal(ctx, entities.Order{ID: "o1", Status: to}, entities.OrderStatusReady)
		}(i, to)
	}
	wg.Wait()

	winners := 0
	for _, r := range results {
		if r.ID != "" {
			winners++
		}
	}
	assert.Equal(t, 1, winners)

	found := 0
	for _, p := range entities.Partitions {
		if o, _ := repo.GetByID(ctx, p, "o1"); o.ID != "" {
			found++
		}
	}
	assert.Equal(t, 1, found)
}

func TestOrderRepository_UpdateStatusCondition(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository()
	_, _ = repo.Create(ctx, entities.Order{ID: "o1", Status: entities.OrderStatusNew})

	stale, err := repo.UpdateStatus(ctx, "o1", entities.OrderStatusWaiting, entities.OrderStatusReady, time.Now())
	require.NoError(t, err)
	assert.Empty(t, stale.ID)

	updated, err := repo.UpdateStatus(ctx, "o1", entities.OrderStatusNew, entities.OrderStatusWaiting, time.Now())
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusWaiting, updated.Status)

	_, err = repo.Create(ctx, entities.Order{ID: "o1", Status: entities.OrderStatusNew})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCostRepository_ListBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewCostRepository()
	for i, d := range []int{1, 5, 9} {
		_, err := repo.Create(ctx, entities.Cost{
			ID:    string(rune('a' + i)),
			Price: decimal.NewFromInt(1),
			Date:  time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	got, err := repo.ListBetween(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	updated, err := repo.Update(ctx, entities.Cost{ID: "missing"})
	require.NoError(t, err)
	assert.Empty(t, updated.ID)

	ok, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
}
