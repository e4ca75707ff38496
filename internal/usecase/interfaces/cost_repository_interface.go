package interfaces

import (
	"context"
	"time"

	"laundry_desk/internal/domain/entities"
)

// ICostRepository abstracts persistence of expense entries.
// ListBetween filters on the cost date, both bounds included.

type ICostRepository interface {
	Create(ctx context.Context, c entities.Cost) (entities.Cost, error)
	GetByID(ctx context.Context, id string) (entities.Cost, error)
	List(ctx context.Context) ([]entities.Cost, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]entities.Cost, error)
	Update(ctx context.Context, c entities.Cost) (entities.Cost, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// IAdminRepository maps device keys to staff names.
type IAdminRepository interface {
	GetByKey(ctx context.Context, key string) (entities.AdminIdentity, error)
	Put(ctx context.Context, a entities.AdminIdentity) (entities.AdminIdentity, error)
}
