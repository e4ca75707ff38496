package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/domain/lifecycle"
	"laundry_desk/internal/domain/pricing"
	"laundry_desk/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrInvalidOrderID           = errors.New("invalid order id")
	ErrInvalidCustomerName      = errors.New("invalid customer name")
	ErrInvalidPhone             = errors.New("phone must have exactly 10 digits")
	ErrInvalidLocation          = errors.New("invalid location")
	ErrEmptyOrder               = errors.New("order must have at least one item")
	ErrOrderTerminal            = errors.New("order is already delivered or deleted")
	ErrConcurrentUpdate         = errors.New("order was changed by someone else")
	ErrCancellationNotConfirmed = errors.New("cancellation must be confirmed")
	ErrOrderNotArchived         = errors.New("only delivered or deleted orders can be purged")
	ErrInvalidStatusFilter      = errors.New("invalid status filter")
)

// StatusFilterAll keeps every active order.
const StatusFilterAll = "All"

// LineItemInput is one service selection as typed by staff.
type LineItemInput struct {
	ServiceID string
	Quantity  string
	Length    string
	Width     string
	ImageRef  string
}

// CreateOrderCommand carries a new order. Either LocationRef or both
// coordinates must be set.
type CreateOrderCommand struct {
	CustomerName  string
	CustomerPhone string
	LocationRef   string
	Latitude      *float64
	Longitude     *float64
	Items         []LineItemInput
}

// IOrderUseCase exposes the order workflow.
//
//   - Advance moves New -> Waiting -> Ready -> Delivered
//   - Cancel moves any active order to Deleted, once confirmed
//   - terminal orders never change again; asking is an error every time
type IOrderUseCase interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (entities.Order, error)
	Advance(ctx context.Context, id string) (entities.Order, error)
	Cancel(ctx context.Context, id string, confirmed bool) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	ListActive(ctx context.Context, statusFilter string) ([]entities.Order, error)
	ListArchive(ctx context.Context) ([]entities.Order, error)
	PurgeArchived(ctx context.Context, id string) error
}

// TransitionObserver is told about every committed status change.
type TransitionObserver func(from, to entities.OrderStatus)

type OrderUseCase struct {
	repo      interfaces.IOrderRepository
	services  interfaces.IServiceRepository
	publisher interfaces.ISnapshotPublisher
	observe   TransitionObserver
	log       *zap.Logger
	now       func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

type OrderOption func(*OrderUseCase)

// WithTransitionObserver registers a callback for committed transitions.
func WithTransitionObserver(fn TransitionObserver) OrderOption {
	return func(u *OrderUseCase) { u.observe = fn }
}

func NewOrderUseCase(repo interfaces.IOrderRepository, services interfaces.IServiceRepository, publisher interfaces.ISnapshotPublisher, logger *zap.Logger, opts ...OrderOption) *OrderUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &OrderUseCase{
		repo:      repo,
		services:  services,
		publisher: publisher,
		log:       logger.Named("order"),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func validPhone(p string) bool {
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (entities.Order, error) {
	name := strings.TrimSpace(cmd.CustomerName)
	if name == "" {
		return entities.Order{}, ErrInvalidCustomerName
	}
	phone := strings.TrimSpace(cmd.CustomerPhone)
	if !validPhone(phone) {
		return entities.Order{}, ErrInvalidPhone
	}
	location := strings.TrimSpace(cmd.LocationRef)
	if location == "" {
		if cmd.Latitude == nil || cmd.Longitude == nil {
			return entities.Order{}, ErrInvalidLocation
		}
		ref, err := entities.NewLocationRef(*cmd.Latitude, *cmd.Longitude)
		if err != nil {
			return entities.Order{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		location = ref
	}
	if len(cmd.Items) == 0 {
		return entities.Order{}, ErrEmptyOrder
	}

	items, err := u.resolveItems(ctx, cmd.Items)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.now()
	o := entities.Order{
		ID:            uuid.NewString(),
		CustomerName:  name,
		CustomerPhone: phone,
		LocationRef:   location,
		Items:         items,
		Status:        entities.OrderStatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	total, err := pricing.OrderTotal(o)
	if err != nil {
		return entities.Order{}, err
	}
	o.Total = total

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		u.log.Error("create failed", zap.String("order_id", o.ID), zap.Error(err))
		return entities.Order{}, persistenceErr(err)
	}
	u.log.Info("order created", zap.String("order_id", created.ID), zap.String("total", created.Total.String()))
	u.notify(ctx, interfaces.CollectionOrdersActive)
	return created, nil
}

// resolveItems snapshots the catalog pricing onto each line item.
func (u *OrderUseCase) resolveItems(ctx context.Context, inputs []LineItemInput) ([]entities.LineItem, error) {
	seen := map[string]entities.Service{}
	items := make([]entities.LineItem, 0, len(inputs))
	for i, in := range inputs {
		id := strings.TrimSpace(in.ServiceID)
		if id == "" {
			return nil, fmt.Errorf("line item %d: %w", i, ErrInvalidServiceID)
		}
		svc, ok := seen[id]
		if !ok {
			found, err := u.services.GetByID(ctx, id)
			if err != nil {
				return nil, persistenceErr(err)
			}
			if found.ID == "" {
				return nil, fmt.Errorf("line item %d: %w: %s", i, ErrServiceNotFound, id)
			}
			svc = found
			seen[id] = svc
		}

		item := entities.LineItem{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			UnitPrice:   svc.Price,
			PricingMode: svc.PricingMode,
			ImageRef:    strings.TrimSpace(in.ImageRef),
		}
		if svc.PricingMode == entities.PricingModePerArea {
			item.Length = strings.TrimSpace(in.Length)
			item.Width = strings.TrimSpace(in.Width)
		} else {
			item.Quantity = strings.TrimSpace(in.Quantity)
		}
		items = append(items, item)
	}
	return items, nil
}

func (u *OrderUseCase) Advance(ctx context.Context, id string) (entities.Order, error) {
	current, err := u.activeOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	next, err := lifecycle.Next(current.Status)
	if err != nil {
		return entities.Order{}, err
	}
	if lifecycle.IsTerminal(next) {
		return u.moveToTerminal(ctx, current, next)
	}

	updated, err := u.repo.UpdateStatus(ctx, current.ID, current.Status, next, u.now())
	if err != nil {
		return entities.Order{}, persistenceErr(err)
	}
	if updated.ID == "" {
		return entities.Order{}, u.conflict(ctx, current.ID)
	}
	u.transitioned(current.Status, next, current.ID)
	u.notify(ctx, interfaces.CollectionOrdersActive)
	return updated, nil
}

func (u *OrderUseCase) Cancel(ctx context.Context, id string, confirmed bool) (entities.Order, error) {
	if strings.TrimSpace(id) == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	if !confirmed {
		return entities.Order{}, ErrCancellationNotConfirmed
	}
	current, err := u.activeOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	return u.moveToTerminal(ctx, current, entities.OrderStatusDeleted)
}

// activeOrder loads an order that may still change. Orders found in a
// terminal partition yield ErrOrderTerminal.
func (u *OrderUseCase) activeOrder(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, entities.PartitionActive, id)
	if err != nil {
		return entities.Order{}, persistenceErr(err)
	}
	if o.ID != "" {
		return o, nil
	}
	closed, err := u.findTerminal(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if closed.ID != "" {
		return entities.Order{}, ErrOrderTerminal
	}
	return entities.Order{}, ErrOrderNotFound
}

func (u *OrderUseCase) findTerminal(ctx context.Context, id string) (entities.Order, error) {
	for _, p := range []entities.Partition{entities.PartitionDelivered, entities.PartitionDeleted} {
		o, err := u.repo.GetByID(ctx, p, id)
		if err != nil {
			return entities.Order{}, persistenceErr(err)
		}
		if o.ID != "" {
			return o, nil
		}
	}
	return entities.Order{}, nil
}

// conflict explains why a conditional write on an active order lost.
func (u *OrderUseCase) conflict(ctx context.Context, id string) error {
	closed, err := u.findTerminal(ctx, id)
	if err != nil {
		return err
	}
	if closed.ID != "" {
		return ErrOrderTerminal
	}
	return ErrConcurrentUpdate
}

func (u *OrderUseCase) moveToTerminal(ctx context.Context, current entities.Order, to entities.OrderStatus) (entities.Order, error) {
	if err := lifecycle.CanTransition(current.Status, to); err != nil {
		return entities.Order{}, err
	}
	total, err := pricing.OrderTotal(current)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.now()
	closed := current
	closed.Status = to
	closed.Total = total
	closed.UpdatedAt = now
	closed.ClosedAt = &now

	moved, err := u.repo.MoveToTerminal(ctx, closed, current.Status)
	if err != nil {
		u.log.Error("terminal move failed", zap.String("order_id", current.ID), zap.String("to", string(to)), zap.Error(err))
		return entities.Order{}, persistenceErr(err)
	}
	if moved.ID == "" {
		return entities.Order{}, u.conflict(ctx, current.ID)
	}
	u.transitioned(current.Status, to, current.ID)

	dest := interfaces.CollectionOrdersDelivered
	if to == entities.OrderStatusDeleted {
		dest = interfaces.CollectionOrdersDeleted
	}
	u.notify(ctx, interfaces.CollectionOrdersActive, dest)
	return moved, nil
}

func (u *OrderUseCase) transitioned(from, to entities.OrderStatus, id string) {
	u.log.Info("status changed", zap.String("order_id", id), zap.String("from", string(from)), zap.String("to", string(to)))
	if u.observe != nil {
		u.observe(from, to)
	}
}

func (u *OrderUseCase) notify(ctx context.Context, collections ...interfaces.Collection) {
	if u.publisher != nil {
		u.publisher.Notify(ctx, collections...)
	}
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}
	for _, p := range entities.Partitions {
		o, err := u.repo.GetByID(ctx, p, id)
		if err != nil {
			return entities.Order{}, persistenceErr(err)
		}
		if o.ID != "" {
			return o, nil
		}
	}
	return entities.Order{}, ErrOrderNotFound
}

func (u *OrderUseCase) ListActive(ctx context.Context, statusFilter string) ([]entities.Order, error) {
	var status entities.OrderStatus
	if f := strings.TrimSpace(statusFilter); f != "" && !strings.EqualFold(f, StatusFilterAll) {
		s, ok := entities.ParseOrderStatus(f)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatusFilter, statusFilter)
		}
		status = s
	}

	orders, err := u.repo.ListByPartition(ctx, entities.PartitionActive)
	if err != nil {
		return nil, persistenceErr(err)
	}
	orders = lifecycle.FilterByStatus(orders, status)
	lifecycle.SortActive(orders)
	return orders, nil
}

// ListArchive returns delivered and deleted orders, most recently closed first.
func (u *OrderUseCase) ListArchive(ctx context.Context) ([]entities.Order, error) {
	var out []entities.Order
	for _, p := range []entities.Partition{entities.PartitionDelivered, entities.PartitionDeleted} {
		orders, err := u.repo.ListByPartition(ctx, p)
		if err != nil {
			return nil, persistenceErr(err)
		}
		out = append(out, orders...)
	}
	closedAt := func(o entities.Order) time.Time {
		if o.ClosedAt != nil {
			return *o.ClosedAt
		}
		return o.UpdatedAt
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := closedAt(out[i]), closedAt(out[j])
		if a.Equal(b) {
			return out[i].ID < out[j].ID
		}
		return a.After(b)
	})
	return out, nil
}

func (u *OrderUseCase) PurgeArchived(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidOrderID
	}
	active, err := u.repo.GetByID(ctx, entities.PartitionActive, id)
	if err != nil {
		return persistenceErr(err)
	}
	if active.ID != "" {
		return ErrOrderNotArchived
	}
	closed, err := u.findTerminal(ctx, id)
	if err != nil {
		return err
	}
	if closed.ID == "" {
		return ErrOrderNotFound
	}

	partition := closed.Partition()
	ok, err := u.repo.Purge(ctx, partition, id)
	if err != nil {
		return persistenceErr(err)
	}
	if !ok {
		return ErrOrderNotFound
	}
	u.log.Info("order purged", zap.String("order_id", id), zap.String("partition", string(partition)))

	col := interfaces.CollectionOrdersDelivered
	if partition == entities.PartitionDeleted {
		col = interfaces.CollectionOrdersDeleted
	}
	u.notify(ctx, col)
	return nil
}
