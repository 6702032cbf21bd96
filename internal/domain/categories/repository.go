package categories

import "context"

// Repository: ErrNotFound cuando el id no existe; otros errores son del
// storage y suben tal cual.
type Repository interface {
	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, c Category) error
	GetByID(ctx context.Context, id string) (Category, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Category, error)
	Delete(ctx context.Context, id string) error
}
