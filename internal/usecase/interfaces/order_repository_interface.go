package interfaces

import (
	"context"
	"time"

	"laundry_desk/internal/domain/entities"
)

// IOrderRepository abstracts persistence of the three order partitions.
//
// Lookups return a zero-value order (empty ID) when nothing matches, and
// conditional writes do the same when their condition fails:
//   - UpdateStatus only applies while the stored status still equals from
//   - MoveToTerminal writes the order into its terminal partition and removes
//     it from the active one in a single atomic step, guarded by from

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, partition entities.Partition, id string) (entities.Order, error)
	ListByPartition(ctx context.Context, partition entities.Partition) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.OrderStatus, at time.Time) (entities.Order, error)
	MoveToTerminal(ctx context.Context, o entities.Order, from entities.OrderStatus) (entities.Order, error)
	Purge(ctx context.Context, partition entities.Partition, id string) (bool, error)
}
