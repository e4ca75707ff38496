package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/domain/pricing"
	"laundry_desk/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCostNotFound       = errors.New("cost not found")
	ErrInvalidCostID      = errors.New("invalid cost id")
	ErrInvalidCostName    = errors.New("invalid cost name")
	ErrMissingDeviceToken = errors.New("missing device token")
	ErrIdentityRequired   = errors.New("unknown device, display name required")
)

// CreateCostCommand records an expense. DisplayName is only used, and then
// remembered, when the device is not known yet.
type CreateCostCommand struct {
	DeviceToken string
	Name        string
	Price       string
	DisplayName string
}

type UpdateCostCommand struct {
	Name  *string
	Price *string
}

// IExpenseUseCase manages the expense ledger. Every entry is attributed to
// the staff member behind the reporting device.
type IExpenseUseCase interface {
	ResolveIdentity(ctx context.Context, deviceToken string) (string, bool, error)
	Create(ctx context.Context, cmd CreateCostCommand) (entities.Cost, error)
	Update(ctx context.Context, id string, cmd UpdateCostCommand) (entities.Cost, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, from, to *time.Time) ([]entities.Cost, error)
}

type ExpenseUseCase struct {
	repo      interfaces.ICostRepository
	admins    interfaces.IAdminRepository
	cache     interfaces.IIdentityCache
	publisher interfaces.ISnapshotPublisher
	loc       *time.Location
	log       *zap.Logger
	now       func() time.Time
}

var _ IExpenseUseCase = (*ExpenseUseCase)(nil)

func NewExpenseUseCase(repo interfaces.ICostRepository, admins interfaces.IAdminRepository, cache interfaces.IIdentityCache, publisher interfaces.ISnapshotPublisher, loc *time.Location, logger *zap.Logger) *ExpenseUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseUseCase{
		repo:      repo,
		admins:    admins,
		cache:     cache,
		publisher: publisher,
		loc:       loc,
		log:       logger.Named("expense"),
		now:       time.Now,
	}
}

// ResolveIdentity looks a device up in the cache, then in the store. A store
// hit refills the cache. Cache failures are logged and skipped.
func (u *ExpenseUseCase) ResolveIdentity(ctx context.Context, deviceToken string) (string, bool, error) {
	key := entities.IdentityKeyFromToken(deviceToken)
	if key == "" {
		return "", false, ErrMissingDeviceToken
	}

	if u.cache != nil {
		name, found, err := u.cache.Get(ctx, key)
		if err != nil {
			u.log.Warn("identity cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return name, true, nil
		}
	}

	admin, err := u.admins.GetByKey(ctx, key)
	if err != nil {
		return "", false, persistenceErr(err)
	}
	if admin.Key == "" {
		return "", false, nil
	}
	u.remember(ctx, key, admin.Name)
	return admin.Name, true, nil
}

func (u *ExpenseUseCase) remember(ctx context.Context, key, name string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, key, name); err != nil {
		u.log.Warn("identity cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (u *ExpenseUseCase) Create(ctx context.Context, cmd CreateCostCommand) (entities.Cost, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Cost{}, ErrInvalidCostName
	}
	price, err := parsePrice(cmd.Price)
	if err != nil {
		return entities.Cost{}, err
	}

	reporter, found, err := u.ResolveIdentity(ctx, cmd.DeviceToken)
	if err != nil {
		return entities.Cost{}, err
	}
	if !found {
		reporter = strings.TrimSpace(cmd.DisplayName)
		if reporter == "" {
			return entities.Cost{}, ErrIdentityRequired
		}
		admin := entities.AdminIdentity{
			Key:       entities.IdentityKeyFromToken(cmd.DeviceToken),
			Name:      reporter,
			FullToken: strings.TrimSpace(cmd.DeviceToken),
			CreatedAt: u.now().UTC(),
		}
		if _, err := u.admins.Put(ctx, admin); err != nil {
			return entities.Cost{}, persistenceErr(err)
		}
		u.remember(ctx, admin.Key, admin.Name)
		u.log.Info("device registered", zap.String("key", admin.Key), zap.String("name", admin.Name))
	}

	now := u.now()
	local := now.In(u.loc)
	c := entities.Cost{
		ID:         uuid.NewString(),
		Name:       name,
		Date:       time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, u.loc),
		ReportedBy: reporter,
		CreatedAt:  now.UTC(),
	}
	c.Price, _ = pricing.ParseAmount(price)

	created, err := u.repo.Create(ctx, c)
	if err != nil {
		return entities.Cost{}, persistenceErr(err)
	}
	u.log.Info("cost recorded", zap.String("cost_id", created.ID), zap.String("reported_by", reporter))
	u.notify(ctx)
	return created, nil
}

func (u *ExpenseUseCase) Update(ctx context.Context, id string, cmd UpdateCostCommand) (entities.Cost, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Cost{}, ErrInvalidCostID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Cost{}, persistenceErr(err)
	}
	if c.ID == "" {
		return entities.Cost{}, ErrCostNotFound
	}

	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Cost{}, ErrInvalidCostName
		}
		c.Name = name
	}
	if cmd.Price != nil {
		price, err := parsePrice(*cmd.Price)
		if err != nil {
			return entities.Cost{}, err
		}
		c.Price, _ = pricing.ParseAmount(price)
	}

	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		return entities.Cost{}, persistenceErr(err)
	}
	if updated.ID == "" {
		return entities.Cost{}, ErrCostNotFound
	}
	u.notify(ctx)
	return updated, nil
}

func (u *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidCostID
	}
	ok, err := u.repo.Delete(ctx, id)
	if err != nil {
		return persistenceErr(err)
	}
	if !ok {
		return ErrCostNotFound
	}
	u.notify(ctx)
	return nil
}

// List returns costs newest first. from and to must be given together and
// bound the cost date, both included.
func (u *ExpenseUseCase) List(ctx context.Context, from, to *time.Time) ([]entities.Cost, error) {
	var (
		costs []entities.Cost
		err   error
	)
	switch {
	case from == nil && to == nil:
		costs, err = u.repo.List(ctx)
	case from == nil || to == nil || to.Before(*from):
		return nil, ErrInvalidDateRange
	default:
		costs, err = u.repo.ListBetween(ctx, *from, *to)
	}
	if err != nil {
		return nil, persistenceErr(err)
	}

	sort.SliceStable(costs, func(i, j int) bool {
		if !costs[i].Date.Equal(costs[j].Date) {
			return costs[i].Date.After(costs[j].Date)
		}
		return costs[i].CreatedAt.After(costs[j].CreatedAt)
	})
	return costs, nil
}

func (u *ExpenseUseCase) notify(ctx context.Context) {
	if u.publisher != nil {
		u.publisher.Notify(ctx, interfaces.CollectionCosts)
	}
}
