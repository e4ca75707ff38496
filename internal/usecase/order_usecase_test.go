package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"laundry_desk/internal/adapter/persistence/memory"
	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"
	mock_interfaces "laundry_desk/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

func shirtService() entities.Service {
	return entities.Service{
		ID:          "svc-shirt",
		Name:        "Shirt",
		Price:       decimal.NewFromInt(150),
		PricingMode: entities.PricingModePerUnit,
	}
}

func rugService() entities.Service {
	return entities.Service{
		ID:          "svc-rug",
		Name:        "Rug",
		Price:       decimal.NewFromInt(50),
		PricingMode: entities.PricingModePerArea,
	}
}

func validCreateCommand() CreateOrderCommand {
	return CreateOrderCommand{
		CustomerName:  " Amina ",
		CustomerPhone: "0550123456",
		LocationRef:   "https://www.google.com/maps?q=36.75,3.06",
		Items: []LineItemInput{
			{ServiceID: "svc-shirt", Quantity: "2"},
			{ServiceID: "svc-rug", Length: "2", Width: "3"},
		},
	}
}

func newTestOrderUseCase(repo interfaces.IOrderRepository, services interfaces.IServiceRepository, pub interfaces.ISnapshotPublisher) *OrderUseCase {
	u := NewOrderUseCase(repo, services, pub, nil)
	u.now = func() time.Time { return fixedNow }
	return u
}

func TestOrderUseCase_CreateOrder_Validations(t *testing.T) {
	lat := 36.75
	cases := []struct {
		name string
		mut  func(*CreateOrderCommand)
		want error
	}{
		{"empty name", func(c *CreateOrderCommand) { c.CustomerName = "  " }, ErrInvalidCustomerName},
		{"short phone", func(c *CreateOrderCommand) { c.CustomerPhone = "055012345" }, ErrInvalidPhone},
		{"phone with letters", func(c *CreateOrderCommand) { c.CustomerPhone = "05501234a6" }, ErrInvalidPhone},
		{"no location", func(c *CreateOrderCommand) { c.LocationRef = "" }, ErrInvalidLocation},
		{"half coordinates", func(c *CreateOrderCommand) { c.LocationRef = ""; c.Latitude = &lat }, ErrInvalidLocation},
		{"bad coordinates", func(c *CreateOrderCommand) {
			bad := 200.0
			c.LocationRef = ""
			c.Latitude, c.Longitude = &lat, &bad
		}, ErrInvalidLocation},
		{"no items", func(c *CreateOrderCommand) { c.Items = nil }, ErrEmptyOrder},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newTestOrderUseCase(nil, nil, nil)
			cmd := validCreateCommand()
			tc.mut(&cmd)
			_, err := uc.CreateOrder(context.Background(), cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestOrderUseCase_CreateOrder(t *testing.T) {
	t.Run("success snapshots pricing and publishes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		pub := mock_interfaces.NewMockISnapshotPublisher(ctrl)
		uc := newTestOrderUseCase(repo, services, pub)

		services.EXPECT().GetByID(gomock.Any(), "svc-shirt").Return(shirtService(), nil)
		services.EXPECT().GetByID(gomock.Any(), "svc-rug").Return(rugService(), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			return o, nil
		})
		pub.EXPECT().Notify(gomock.Any(), interfaces.CollectionOrdersActive)

		o, err := uc.CreateOrder(context.Background(), validCreateCommand())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusNew || o.CustomerName != "Amina" {
			t.Fatalf("unexpected order: %+v", o)
		}
		if !o.Total.Equal(decimal.NewFromInt(600)) {
			t.Fatalf("expected total 600, got %s", o.Total)
		}
		if o.Items[0].ServiceName != "Shirt" || o.Items[1].Quantity != "" || o.Items[1].Length != "2" {
			t.Fatalf("unexpected line items: %+v", o.Items)
		}
		if !o.CreatedAt.Equal(fixedNow) {
			t.Fatalf("unexpected created_at %v", o.CreatedAt)
		}
	})

	t.Run("coordinates become a location ref", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := newTestOrderUseCase(repo, services, nil)

		lat, lon := 36.75, 3.06
		cmd := validCreateCommand()
		cmd.LocationRef, cmd.Latitude, cmd.Longitude = "", &lat, &lon
		cmd.Items = cmd.Items[:1]

		services.EXPECT().GetByID(gomock.Any(), "svc-shirt").Return(shirtService(), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, o entities.Order) (entities.Order, error) {
			return o, nil
		})

		o, err := uc.CreateOrder(context.Background(), cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.LocationRef != "https://www.google.com/maps?q=36.75,3.06" {
			t.Fatalf("unexpected location %q", o.LocationRef)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		uc := newTestOrderUseCase(nil, services, nil)

		services.EXPECT().GetByID(gomock.Any(), "svc-shirt").Return(entities.Service{}, nil)

		_, err := uc.CreateOrder(context.Background(), validCreateCommand())
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})

	t.Run("invalid quantity blocks submission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, services, nil)

		cmd := validCreateCommand()
		cmd.Items[0].Quantity = "abc"
		services.EXPECT().GetByID(gomock.Any(), "svc-shirt").Return(shirtService(), nil)
		services.EXPECT().GetByID(gomock.Any(), "svc-rug").Return(rugService(), nil)

		_, err := uc.CreateOrder(context.Background(), cmd)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		services := mock_interfaces.NewMockIServiceRepository(ctrl)
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, services, nil)

		cmd := validCreateCommand()
		cmd.Items = cmd.Items[:1]
		services.EXPECT().GetByID(gomock.Any(), "svc-shirt").Return(shirtService(), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, errors.New("db"))

		_, err := uc.CreateOrder(context.Background(), cmd)
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func activeOrder(status entities.OrderStatus) entities.Order {
	return entities.Order{
		ID:     "o1",
		Status: status,
		Items: []entities.LineItem{{
			ServiceID:   "svc-shirt",
			ServiceName: "Shirt",
			UnitPrice:   decimal.NewFromInt(150),
			PricingMode: entities.PricingModePerUnit,
			Quantity:    "2",
		}},
		CreatedAt: fixedNow.Add(-time.Hour),
	}
}

func TestOrderUseCase_Advance(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := newTestOrderUseCase(nil, nil, nil)
		_, err := uc.Advance(context.Background(), " ")
		if !errors.Is(err, ErrInvalidOrderID) {
			t.Fatalf("expected ErrInvalidOrderID, got %v", err)
		}
	})

	t.Run("non terminal step is a conditional update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockISnapshotPublisher(ctrl)
		uc := newTestOrderUseCase(repo, nil, pub)

		var observed []entities.OrderStatus
		uc.observe = func(from, to entities.OrderStatus) { observed = append(observed, from, to) }

		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(activeOrder(entities.OrderStatusNew), nil)
		updated := activeOrder(entities.OrderStatusWaiting)
		repo.EXPECT().UpdateStatus(gomock.Any(), "o1", entities.OrderStatusNew, entities.OrderStatusWaiting, fixedNow).Return(updated, nil)
		pub.EXPECT().Notify(gomock.Any(), interfaces.CollectionOrdersActive)

		o, err := uc.Advance(context.Background(), "o1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusWaiting {
			t.Fatalf("expected Waiting, got %s", o.Status)
		}
		if len(observed) != 2 || observed[0] != entities.OrderStatusNew {
			t.Fatalf("unexpected observed transitions %v", observed)
		}
	})

	t.Run("ready moves to delivered with frozen total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockISnapshotPublisher(ctrl)
		uc := newTestOrderUseCase(repo, nil, pub)

		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(activeOrder(entities.OrderStatusReady), nil)
		repo.EXPECT().MoveToTerminal(gomock.Any(), gomock.Any(), entities.OrderStatusReady).
			DoAndReturn(func(_ context.Context, o entities.Order, _ entities.OrderStatus) (entities.Order, error) {
				if o.Status != entities.OrderStatusDelivered || o.ClosedAt == nil || !o.Total.Equal(decimal.NewFromInt(300)) {
					t.Fatalf("unexpected moved order %+v", o)
				}
				return o, nil
			})
		pub.EXPECT().Notify(gomock.Any(), interfaces.CollectionOrdersActive, interfaces.CollectionOrdersDelivered)

		o, err := uc.Advance(context.Background(), "o1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Partition() != entities.PartitionDelivered {
			t.Fatalf("expected delivered partition, got %s", o.Partition())
		}
	})

	t.Run("terminal order is rejected every time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil, nil)

		delivered := activeOrder(entities.OrderStatusDelivered)
		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(entities.Order{}, nil).Times(2)
		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionDelivered, "o1").Return(delivered, nil).Times(2)

		for i := 0; i < 2; i++ {
			_, err := uc.Advance(context.Background(), "o1")
			if !errors.Is(err, ErrOrderTerminal) {
				t.Fatalf("attempt %d: expected ErrOrderTerminal, got %v", i, err)
			}
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), gomock.Any(), "o1").Return(entities.Order{}, nil).Times(3)

		_, err := uc.Advance(context.Background(), "o1")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("lost race on status update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(activeOrder(entities.OrderStatusNew), nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "o1", entities.OrderStatusNew, entities.OrderStatusWaiting, fixedNow).Return(entities.Order{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionDelivered, "o1").Return(entities.Order{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionDeleted, "o1").Return(entities.Order{}, nil)

		_, err := uc.Advance(context.Background(), "o1")
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})

	t.Run("lost race on terminal move", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(activeOrder(entities.OrderStatusReady), nil)
		repo.EXPECT().MoveToTerminal(gomock.Any(), gomock.Any(), entities.OrderStatusReady).Return(entities.Order{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionDelivered, "o1").Return(entities.Order{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionDeleted, "o1").Return(activeOrder(entities.OrderStatusDeleted), nil)

		_, err := uc.Advance(context.Background(), "o1")
		if !errors.Is(err, ErrOrderTerminal) {
			t.Fatalf("expected ErrOrderTerminal, got %v", err)
		}
	})
}

func TestOrderUseCase_Cancel(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		uc := newTestOrderUseCase(nil, nil, nil)
		_, err := uc.Cancel(context.Background(), "o1", false)
		if !errors.Is(err, ErrCancellationNotConfirmed) {
			t.Fatalf("expected ErrCancellationNotConfirmed, got %v", err)
		}
	})

	t.Run("moves to deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		pub := mock_interfaces.NewMockISnapshotPublisher(ctrl)
		uc := newTestOrderUseCase(repo, nil, pub)

		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(activeOrder(entities.OrderStatusWaiting), nil)
		repo.EXPECT().MoveToTerminal(gomock.Any(), gomock.Any(), entities.OrderStatusWaiting).
			DoAndReturn(func(_ context.Context, o entities.Order, _ entities.OrderStatus) (entities.Order, error) { return o, nil })
		pub.EXPECT().Notify(gomock.Any(), interfaces.CollectionOrdersActive, interfaces.CollectionOrdersDeleted)

		o, err := uc.Cancel(context.Background(), "o1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if o.Status != entities.OrderStatusDeleted {
			t.Fatalf("expected Deleted, got %s", o.Status)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		uc := newTestOrderUseCase(repo, nil, nil)

		repo.EXPECT().GetByID(gomock.Any(), entities.PartitionActive, "o1").Return(entities.Order{}, errors.New("timeout"))

		_, err := uc.Cancel(context.Background(), "o1", true)
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func seedServices(t *testing.T, repo *memory.ServiceRepository) {
	t.Helper()
	for _, s := range []entities.Service{shirtService(), rugService()} {
		if _, err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestOrderUseCase_ListActive(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepository()
	services := memory.NewServiceRepository()
	seedServices(t, services)
	uc := newTestOrderUseCase(orders, services, nil)

	var ids []string
	for i := 0; i < 3; i++ {
		uc.now = func() time.Time { return fixedNow.Add(time.Duration(3-i) * time.Minute) }
		o, err := uc.CreateOrder(ctx, validCreateCommand())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, o.ID)
	}
	if _, err := uc.Advance(ctx, ids[0]); err != nil {
		t.Fatalf("advance: %v", err)
	}

	all, err := uc.ListActive(ctx, "All")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Fatalf("expected oldest first, got %+v", all)
	}

	waiting, err := uc.ListActive(ctx, "waiting")
	if err != nil || len(waiting) != 1 || waiting[0].ID != ids[0] {
		t.Fatalf("unexpected waiting list %+v (%v)", waiting, err)
	}

	if _, err := uc.ListActive(ctx, "Lost"); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Fatalf("expected ErrInvalidStatusFilter, got %v", err)
	}
}

func TestOrderUseCase_ArchiveAndPurge(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepository()
	services := memory.NewServiceRepository()
	seedServices(t, services)
	uc := newTestOrderUseCase(orders, services, nil)

	a, _ := uc.CreateOrder(ctx, validCreateCommand())
	b, _ := uc.CreateOrder(ctx, validCreateCommand())

	if err := uc.PurgeArchived(ctx, a.ID); !errors.Is(err, ErrOrderNotArchived) {
		t.Fatalf("expected ErrOrderNotArchived, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := uc.Advance(ctx, a.ID); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	if _, err := uc.Cancel(ctx, b.ID, true); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	archive, err := uc.ListArchive(ctx)
	if err != nil || len(archive) != 2 {
		t.Fatalf("expected 2 archived orders, got %d (%v)", len(archive), err)
	}

	if err := uc.PurgeArchived(ctx, b.ID); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, err := uc.GetByID(ctx, b.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := uc.PurgeArchived(ctx, b.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

// Random operation sequences never leave an order in zero or several
// partitions, and terminal orders never change again.
func TestOrderUseCase_PartitionExclusivity(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		orders := memory.NewOrderRepository()
		services := memory.NewServiceRepository()
		seedServices(t, services)
		uc := newTestOrderUseCase(orders, services, nil)

		var ids []string
		for i := 0; i < 5; i++ {
			o, err := uc.CreateOrder(ctx, validCreateCommand())
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			ids = append(ids, o.ID)
		}

		final := map[string]entities.Order{}
		for step := 0; step < 40; step++ {
			id := ids[rng.Intn(len(ids))]
			var err error
			if rng.Intn(4) == 0 {
				_, err = uc.Cancel(ctx, id, true)
			} else {
				_, err = uc.Advance(ctx, id)
			}

			if closed, ok := final[id]; ok {
				if !errors.Is(err, ErrOrderTerminal) {
					t.Fatalf("round %d: terminal order %s accepted a change: %v", round, id, err)
				}
				now, _ := uc.GetByID(ctx, id)
				if now.Status != closed.Status || !now.Total.Equal(closed.Total) {
					t.Fatalf("round %d: terminal order %s changed", round, id)
				}
				continue
			}
			if err != nil {
				t.Fatalf("round %d: unexpected error: %v", round, err)
			}
			if o, _ := uc.GetByID(ctx, id); lifecycleTerminal(o.Status) {
				final[id] = o
			}
		}

		for _, id := range ids {
			found := 0
			for _, p := range entities.Partitions {
				o, _ := orders.GetByID(ctx, p, id)
				if o.ID != "" {
					found++
					if o.Partition() != p {
						t.Fatalf("round %d: order %s with status %s stored in %s", round, id, o.Status, p)
					}
				}
			}
			if found != 1 {
				t.Fatalf("round %d: order %s found in %d partitions", round, id, found)
			}
		}
	}
}

func lifecycleTerminal(s entities.OrderStatus) bool {
	return s == entities.OrderStatusDelivered || s == entities.OrderStatusDeleted
}

func TestOrderUseCase_ConcurrentTerminalMoves(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepository()
	services := memory.NewServiceRepository()
	seedServices(t, services)
	uc := newTestOrderUseCase(orders, services, nil)

	o, _ := uc.CreateOrder(ctx, validCreateCommand())
	_, _ = uc.Advance(ctx, o.ID)
	_, _ = uc.Advance(ctx, o.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() { defer wg.Done(); _, errs[0] = uc.Advance(ctx, o.ID) }()
	go func() { defer wg.Done(); _, errs[1] = uc.Cancel(ctx, o.ID, true) }()
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrOrderTerminal):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}
