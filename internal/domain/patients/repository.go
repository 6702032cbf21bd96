package patients

import "context"

// Repository: ErrNotFound cuando el id no existe; otros errores son del
// storage y suben tal cual.
type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Patient, error)
	Delete(ctx context.Context, id string) error
}
