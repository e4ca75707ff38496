package usecase

import (
	"context"
	"errors"
	"io"
	"path"
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
	ErrServiceNotFound     = errors.New("service not found")
	ErrInvalidServiceID    = errors.New("invalid service id")
	ErrInvalidServiceName  = errors.New("invalid service name")
	ErrInvalidPricingMode  = errors.New("invalid pricing mode")
	ErrInvalidImage        = errors.New("invalid image")
	ErrStorageNotAvailable = errors.New("blob storage not configured")
)

// BlobUpload is an image received from a client.
type BlobUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CreateServiceCommand struct {
	Name        string
	Price       string
	PricingMode string
	Image       *BlobUpload
}

// UpdateServiceCommand changes only the fields that are set.
type UpdateServiceCommand struct {
	Name        *string
	Price       *string
	PricingMode *string
	Image       *BlobUpload
}

// ICatalogUseCase manages the service catalog and its images.
//
// Images are uploaded before the record is written. When the record write
// fails the fresh upload is removed again; an image replaced or orphaned by
// a successful write is removed best effort.
type ICatalogUseCase interface {
	Create(ctx context.Context, cmd CreateServiceCommand) (entities.Service, error)
	Update(ctx context.Context, id string, cmd UpdateServiceCommand) (entities.Service, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
	UploadImage(ctx context.Context, img BlobUpload) (string, error)
}

type CatalogUseCase struct {
	repo      interfaces.IServiceRepository
	blobs     interfaces.IBlobStorage
	publisher interfaces.ISnapshotPublisher
	log       *zap.Logger
	now       func() time.Time
}

var _ ICatalogUseCase = (*CatalogUseCase)(nil)

func NewCatalogUseCase(repo interfaces.IServiceRepository, blobs interfaces.IBlobStorage, publisher interfaces.ISnapshotPublisher, logger *zap.Logger) *CatalogUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogUseCase{
		repo:      repo,
		blobs:     blobs,
		publisher: publisher,
		log:       logger.Named("catalog"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func parsePrice(v string) (string, error) {
	v = strings.TrimSpace(v)
	if !pricing.IsDecimal(v) {
		return "", ErrInvalidPrice
	}
	return v, nil
}

func (u *CatalogUseCase) Create(ctx context.Context, cmd CreateServiceCommand) (entities.Service, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return entities.Service{}, ErrInvalidServiceName
	}
	price, err := parsePrice(cmd.Price)
	if err != nil {
		return entities.Service{}, err
	}
	mode, ok := entities.ParsePricingMode(cmd.PricingMode)
	if !ok {
		return entities.Service{}, ErrInvalidPricingMode
	}

	now := u.now()
	svc := entities.Service{
		ID:          uuid.NewString(),
		Name:        name,
		PricingMode: mode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	svc.Price, _ = pricing.ParseAmount(price)

	if cmd.Image != nil {
		key, ref, err := u.upload(ctx, "services", *cmd.Image)
		if err != nil {
			return entities.Service{}, err
		}
		svc.ImageKey, svc.ImageRef = key, ref
	}

	created, err := u.repo.Create(ctx, svc)
	if err != nil {
		return entities.Service{}, u.rollbackUpload(ctx, svc.ImageKey, err)
	}
	u.log.Info("service created", zap.String("service_id", created.ID), zap.String("name", created.Name))
	u.notify(ctx)
	return created, nil
}

func (u *CatalogUseCase) Update(ctx context.Context, id string, cmd UpdateServiceCommand) (entities.Service, error) {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}

	svc := existing
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.Service{}, ErrInvalidServiceName
		}
		svc.Name = name
	}
	if cmd.Price != nil {
		price, err := parsePrice(*cmd.Price)
		if err != nil {
			return entities.Service{}, err
		}
		svc.Price, _ = pricing.ParseAmount(price)
	}
	if cmd.PricingMode != nil {
		mode, ok := entities.ParsePricingMode(*cmd.PricingMode)
		if !ok {
			return entities.Service{}, ErrInvalidPricingMode
		}
		svc.PricingMode = mode
	}
	if cmd.Image != nil {
		key, ref, err := u.upload(ctx, "services", *cmd.Image)
		if err != nil {
			return entities.Service{}, err
		}
		svc.ImageKey, svc.ImageRef = key, ref
	}
	svc.UpdatedAt = u.now()

	newKey := ""
	if cmd.Image != nil {
		newKey = svc.ImageKey
	}
	updated, err := u.repo.Update(ctx, svc)
	if err != nil {
		return entities.Service{}, u.rollbackUpload(ctx, newKey, err)
	}
	if updated.ID == "" {
		if newKey != "" {
			u.removeBlob(ctx, newKey)
		}
		return entities.Service{}, ErrServiceNotFound
	}

	if cmd.Image != nil && existing.ImageKey != "" && existing.ImageKey != updated.ImageKey {
		u.removeBlob(ctx, existing.ImageKey)
	}
	u.notify(ctx)
	return updated, nil
}

func (u *CatalogUseCase) Delete(ctx context.Context, id string) error {
	existing, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ok, err := u.repo.Delete(ctx, existing.ID)
	if err != nil {
		return persistenceErr(err)
	}
	if !ok {
		return ErrServiceNotFound
	}
	u.log.Info("service deleted", zap.String("service_id", existing.ID))
	if existing.ImageKey != "" {
		u.removeBlob(ctx, existing.ImageKey)
	}
	u.notify(ctx)
	return nil
}

func (u *CatalogUseCase) GetByID(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	svc, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, persistenceErr(err)
	}
	if svc.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return svc, nil
}

// List returns the catalog sorted by name.
func (u *CatalogUseCase) List(ctx context.Context) ([]entities.Service, error) {
	list, err := u.repo.List(ctx)
	if err != nil {
		return nil, persistenceErr(err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].Name), strings.ToLower(list[j].Name)
		if a == b {
			return list[i].ID < list[j].ID
		}
		return a < b
	})
	return list, nil
}

// UploadImage stores a line-item photo and returns its reference.
func (u *CatalogUseCase) UploadImage(ctx context.Context, img BlobUpload) (string, error) {
	_, ref, err := u.upload(ctx, "uploads", img)
	return ref, err
}

func (u *CatalogUseCase) upload(ctx context.Context, prefix string, img BlobUpload) (key, ref string, err error) {
	if u.blobs == nil {
		return "", "", ErrStorageNotAvailable
	}
	if img.Body == nil || !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		return "", "", ErrInvalidImage
	}
	key = prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(img.Filename))
	ref, err = u.blobs.Upload(ctx, key, img.ContentType, img.Body, img.Size)
	if err != nil {
		u.log.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return "", "", persistenceErr(err)
	}
	return key, ref, nil
}

// rollbackUpload removes a blob whose record write failed with cause.
func (u *CatalogUseCase) rollbackUpload(ctx context.Context, key string, cause error) error {
	if key == "" {
		return persistenceErr(cause)
	}
	if err := u.blobs.Delete(ctx, key); err != nil {
		u.log.Error("orphan image cleanup failed", zap.String("key", key), zap.Error(err))
		return errors.Join(ErrPartialFailure, cause, err)
	}
	return persistenceErr(cause)
}

func (u *CatalogUseCase) removeBlob(ctx context.Context, key string) {
	if u.blobs == nil {
		return
	}
	if err := u.blobs.Delete(ctx, key); err != nil {
		u.log.Warn("image delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (u *CatalogUseCase) notify(ctx context.Context) {
	if u.publisher != nil {
		u.publisher.Notify(ctx, interfaces.CollectionServices)
	}
}
