package routes

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"laundry_desk/internal/adapter/http/dto/response"
	"laundry_desk/internal/adapter/http/handlers"
	"laundry_desk/internal/adapter/persistence/memory"
	"laundry_desk/internal/adapter/persistence/repository"
	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/infrastructure/cache"
	"laundry_desk/internal/infrastructure/config"
	"laundry_desk/internal/infrastructure/database"
	"laundry_desk/internal/infrastructure/metrics"
	"laundry_desk/internal/infrastructure/realtime"
	"laundry_desk/internal/infrastructure/storage"
	"laundry_desk/internal/usecase"
	"laundry_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
)

const bucketCheckTimeout = 10 * time.Second

type stores struct {
	orders   interfaces.IOrderRepository
	services interfaces.IServiceRepository
	costs    interfaces.ICostRepository
	admins   interfaces.IAdminRepository
}

// container owns everything the handlers need and what must be closed on
// shutdown.
type container struct {
	hub     *realtime.Hub
	metrics *metrics.Metrics

	orderHandler     *handlers.OrderHandler
	catalogHandler   *handlers.CatalogHandler
	expenseHandler   *handlers.ExpenseHandler
	analyticsHandler *handlers.AnalyticsHandler
	streamHandler    *handlers.StreamHandler

	closers []func() error
}

func newContainer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*container, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}

	// The AWS config is only needed by DynamoDB and S3; loading it does not
	// touch the network.
	var awsCfg aws.Config
	if cfg.Store.Backend == config.BackendDynamoDB || cfg.Storage.Bucket != "" {
		awsCfg, err = database.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	st := newStores(awsCfg, cfg, log)
	blobs := newBlobStorage(ctx, awsCfg, cfg, log)
	identities, closeCache := newIdentityCache(cfg, log)

	c := &container{metrics: metrics.New()}
	if closeCache != nil {
		c.closers = append(c.closers, closeCache)
	}
	c.hub = realtime.NewHub(log, realtime.WithSubscriberGauge(c.metrics.SetSubscribers))

	currency := cfg.App.Currency
	orderUC := usecase.NewOrderUseCase(st.orders, st.services, c.hub, log,
		usecase.WithTransitionObserver(c.metrics.ObserveTransition))
	catalogUC := usecase.NewCatalogUseCase(st.services, blobs, c.hub, log)
	expenseUC := usecase.NewExpenseUseCase(st.costs, st.admins, identities, c.hub, loc, log)
	analyticsUC := usecase.NewAnalyticsUseCase(st.orders, st.costs, loc, log)

	registerCollections(c.hub, st, catalogUC, expenseUC, currency)

	c.orderHandler = handlers.NewOrderHandler(orderUC, currency)
	c.catalogHandler = handlers.NewCatalogHandler(catalogUC, currency, cfg.HTTP.MaxUploadBytes)
	c.expenseHandler = handlers.NewExpenseHandler(expenseUC, currency, loc)
	c.analyticsHandler = handlers.NewAnalyticsHandler(analyticsUC, currency, loc)
	c.streamHandler = handlers.NewStreamHandler(c.hub, 0)
	return c, nil
}

func newStores(awsCfg aws.Config, cfg *config.Config, log *zap.Logger) stores {
	if cfg.Store.Backend == config.BackendMemory {
		log.Warn("Using the in-memory store, data is lost on restart")
		return stores{
			orders:   memory.NewOrderRepository(),
			services: memory.NewServiceRepository(),
			costs:    memory.NewCostRepository(),
			admins:   memory.NewAdminRepository(),
		}
	}

	ddb := database.ConnectDynamoDB(awsCfg, cfg)
	tables := tableNames(cfg.DynamoDB)
	return stores{
		orders:   repository.NewOrderDynamoRepository(ddb, tables),
		services: repository.NewServiceDynamoRepository(ddb, tables),
		costs:    repository.NewCostDynamoRepository(ddb, tables),
		admins:   repository.NewAdminDynamoRepository(ddb, tables),
	}
}

// tableNames maps the configured table names onto the repository layout.
// Empty names fall back to the repository defaults.
func tableNames(cfg config.DynamoDBConfig) repository.Tables {
	return repository.Tables{
		OrdersActive:    cfg.OrdersActiveTable,
		OrdersDelivered: cfg.OrdersDeliveredTable,
		OrdersDeleted:   cfg.OrdersDeletedTable,
		Services:        cfg.ServicesTable,
		Costs:           cfg.CostsTable,
		Admins:          cfg.AdminsTable,
	}
}

// newBlobStorage returns nil when no bucket is configured; the catalog then
// rejects images with ErrStorageNotAvailable.
func newBlobStorage(ctx context.Context, awsCfg aws.Config, cfg *config.Config, log *zap.Logger) interfaces.IBlobStorage {
	if cfg.Storage.Bucket == "" {
		log.Info("Image storage disabled, STORAGE_BUCKET is empty")
		return nil
	}
	s3, err := storage.NewS3BlobStorage(awsCfg, cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Warn("Image storage disabled", zap.Error(err))
		return nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()
	if err := s3.EnsureBucket(checkCtx); err != nil {
		log.Warn("Could not verify storage bucket", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
	}
	return s3
}

func newIdentityCache(cfg *config.Config, log *zap.Logger) (interfaces.IIdentityCache, func() error) {
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisIdentityCache(cfg.Redis)
		if err == nil {
			return rc, rc.Close
		}
		log.Warn("Redis unavailable, falling back to the in-process identity cache", zap.Error(err))
	}
	return cache.NewMemoryIdentityCache(cfg.Redis.TTL), nil
}

// registerCollections installs one loader per streamed collection. Loaders
// return the same DTOs the list endpoints serve.
func registerCollections(hub *realtime.Hub, st stores, catalog usecase.ICatalogUseCase, expenses usecase.IExpenseUseCase, currency string) {
	for _, partition := range entities.Partitions {
		hub.Register(partitionCollection(partition), func(ctx context.Context) (any, error) {
			list, err := st.orders.ListByPartition(ctx, partition)
			if err != nil {
				return nil, err
			}
			return response.FromOrders(list, currency), nil
		})
	}
	hub.Register(interfaces.CollectionServices, func(ctx context.Context) (any, error) {
		list, err := catalog.List(ctx)
		if err != nil {
			return nil, err
		}
		return response.FromServices(list, currency), nil
	})
	hub.Register(interfaces.CollectionCosts, func(ctx context.Context) (any, error) {
		list, err := expenses.List(ctx, nil, nil)
		if err != nil {
			return nil, err
		}
		return response.FromCosts(list, currency), nil
	})
}

func partitionCollection(p entities.Partition) interfaces.Collection {
	switch p {
	case entities.PartitionDelivered:
		return interfaces.CollectionOrdersDelivered
	case entities.PartitionDeleted:
		return interfaces.CollectionOrdersDeleted
	default:
		return interfaces.CollectionOrdersActive
	}
}

func (c *container) Close(log *zap.Logger) {
	c.hub.Close()
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			log.Warn("Close failed", zap.Error(err))
		}
	}
}
