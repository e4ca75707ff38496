// Package memory keeps every collection in process memory. It backs local
// runs (STORE_BACKEND=memory) and tests; data is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"
)

// OrderRepository holds the three order partitions under one lock, so a
// terminal move is atomic.
type OrderRepository struct {
	mu         sync.RWMutex
	partitions map[entities.Partition]map[string]entities.Order
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	r := &OrderRepository{partitions: map[entities.Partition]map[string]entities.Order{}}
	for _, p := range entities.Partitions {
		r.partitions[p] = map[string]entities.Order{}
	}
	return r
}

func cloneOrder(o entities.Order) entities.Order {
	o.Items = append([]entities.LineItem(nil), o.Items...)
	if o.ClosedAt != nil {
		t := *o.ClosedAt
		o.ClosedAt = &t
	}
	return o
}

func (r *OrderRepository) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	part := r.partitions[o.Partition()]
	if _, ok := part[o.ID]; ok {
		return entities.Order{}, ErrAlreadyExists
	}
	part[o.ID] = cloneOrder(o)
	return o, nil
}

func (r *OrderRepository) GetByID(_ context.Context, partition entities.Partition, id string) (entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneOrder(r.partitions[partition][id]), nil
}

func (r *OrderRepository) ListByPartition(_ context.Context, partition entities.Partition) ([]entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entities.Order, 0, len(r.partitions[partition]))
	for _, o := range r.partitions[partition] {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id string, from, to entities.OrderStatus, at time.Time) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.partitions[entities.PartitionActive]
	o, ok := active[id]
	if !ok || o.Status != from {
		return entities.Order{}, nil
	}
	o.Status = to
	o.UpdatedAt = at
	active[id] = o
	return cloneOrder(o), nil
}

func (r *OrderRepository) MoveToTerminal(_ context.Context, o entities.Order, from entities.OrderStatus) (entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := r.partitions[entities.PartitionActive]
	current, ok := active[o.ID]
	if !ok || current.Status != from {
		return entities.Order{}, nil
	}
	dest := r.partitions[o.Partition()]
	if _, exists := dest[o.ID]; exists {
		return entities.Order{}, nil
	}
	delete(active, o.ID)
	dest[o.ID] = cloneOrder(o)
	return o, nil
}

func (r *OrderRepository) Purge(_ context.Context, partition entities.Partition, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.partitions[partition][id]; !ok {
		return false, nil
	}
	delete(r.partitions[partition], id)
	return true, nil
}
