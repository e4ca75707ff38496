package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"laundry_desk/internal/domain/entities"
	"laundry_desk/internal/usecase/interfaces"
)

var ErrAlreadyExists = errors.New("record already exists")

// table is a keyed collection guarded by its own lock.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[string]T{}}
}

func (t *table[T]) insert(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; ok {
		return ErrAlreadyExists
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) put(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = v
}

// replace overwrites an existing row only.
func (t *table[T]) replace(id string, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	t.rows[id] = v
	return true
}

func (t *table[T]) get(id string) T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows[id]
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) all(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, v := range t.rows {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

type ServiceRepository struct{ t *table[entities.Service] }

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{t: newTable[entities.Service]()}
}

func (r *ServiceRepository) Create(_ context.Context, s entities.Service) (entities.Service, error) {
	if err := r.t.insert(s.ID, s); err != nil {
		return entities.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id string) (entities.Service, error) {
	return r.t.get(id), nil
}

func (r *ServiceRepository) List(_ context.Context) ([]entities.Service, error) {
	return r.t.all(nil), nil
}

func (r *ServiceRepository) Update(_ context.Context, s entities.Service) (entities.Service, error) {
	if !r.t.replace(s.ID, s) {
		return entities.Service{}, nil
	}
	return s, nil
}

func (r *ServiceRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.remove(id), nil
}

type CostRepository struct{ t *table[entities.Cost] }

var _ interfaces.ICostRepository = (*CostRepository)(nil)

func NewCostRepository() *CostRepository {
	return &CostRepository{t: newTable[entities.Cost]()}
}

func (r *CostRepository) Create(_ context.Context, c entities.Cost) (entities.Cost, error) {
	if err := r.t.insert(c.ID, c); err != nil {
		return entities.Cost{}, err
	}
	return c, nil
}

func (r *CostRepository) GetByID(_ context.Context, id string) (entities.Cost, error) {
	return r.t.get(id), nil
}

func (r *CostRepository) List(_ context.Context) ([]entities.Cost, error) {
	return r.t.all(nil), nil
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func (r *CostRepository) ListBetween(_ context.Context, from, to time.Time) ([]entities.Cost, error) {
	lo, hi := dayKey(from), dayKey(to)
	return r.t.all(func(c entities.Cost) bool {
		d := dayKey(c.Date)
		return d >= lo && d <= hi
	}), nil
}

func (r *CostRepository) Update(_ context.Context, c entities.Cost) (entities.Cost, error) {
	if !r.t.replace(c.ID, c) {
		return entities.Cost{}, nil
	}
	return c, nil
}

func (r *CostRepository) Delete(_ context.Context, id string) (bool, error) {
	return r.t.remove(id), nil
}

type AdminRepository struct{ t *table[entities.AdminIdentity] }

var _ interfaces.IAdminRepository = (*AdminRepository)(nil)

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{t: newTable[entities.AdminIdentity]()}
}

func (r *AdminRepository) GetByKey(_ context.Context, key string) (entities.AdminIdentity, error) {
	return r.t.get(key), nil
}

func (r *AdminRepository) Put(_ context.Context, a entities.AdminIdentity) (entities.AdminIdentity, error) {
	r.t.put(a.Key, a)
	return a, nil
}
