// Package lifecycle holds the order status state machine.
package lifecycle

import (
	"errors"
	"fmt"
	"sort"

	"laundry_desk/internal/domain/entities"
)

var (
	ErrTerminalStatus    = errors.New("order is in a terminal status")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// nextStatus is the happy path. Delivered and Deleted have no entry.
var nextStatus = map[entities.OrderStatus]entities.OrderStatus{
	entities.OrderStatusNew:     entities.OrderStatusWaiting,
	entities.OrderStatusWaiting: entities.OrderStatusReady,
	entities.OrderStatusReady:   entities.OrderStatusDelivered,
}

// allowedTransitions lists every target reachable from a status, including
// cancellation.
var allowedTransitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.OrderStatusNew:     {entities.OrderStatusWaiting, entities.OrderStatusDeleted},
	entities.OrderStatusWaiting: {entities.OrderStatusReady, entities.OrderStatusDeleted},
	entities.OrderStatusReady:   {entities.OrderStatusDelivered, entities.OrderStatusDeleted},
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s entities.OrderStatus) bool {
	return s == entities.OrderStatusDelivered || s == entities.OrderStatusDeleted
}

// Next returns the status that follows s on the happy path.
func Next(s entities.OrderStatus) (entities.OrderStatus, error) {
	if IsTerminal(s) {
		return "", fmt.Errorf("%w: %s", ErrTerminalStatus, s)
	}
	next, ok := nextStatus[s]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return next, nil
}

// CanTransition checks that from -> to is an edge of the state machine.
func CanTransition(from, to entities.OrderStatus) error {
	if IsTerminal(from) {
		return fmt.Errorf("%w: %s", ErrTerminalStatus, from)
	}
	allowed, ok := allowedTransitions[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// SortActive orders oldest first; ids break ties so the order is stable
// across snapshots.
func SortActive(orders []entities.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}

// FilterByStatus keeps the orders with the given status. An empty status
// keeps everything.
func FilterByStatus(orders []entities.Order, status entities.OrderStatus) []entities.Order {
	out := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
