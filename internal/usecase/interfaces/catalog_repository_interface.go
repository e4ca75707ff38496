package interfaces

import (
	"context"

	"laundry_desk/internal/domain/entities"
)

// IServiceRepository abstracts persistence of the service catalog.
// Update and GetByID return a zero-value service when the id is unknown.

type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context) ([]entities.Service, error)
	Update(ctx context.Context, s entities.Service) (entities.Service, error)
	Delete(ctx context.Context, id string) (bool, error)
}
