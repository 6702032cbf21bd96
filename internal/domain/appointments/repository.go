package appointments

import "context"

// Repository: las implementaciones devuelven ErrNotFound cuando el id
// no existe; todo otro error es del storage y se propaga sin traducir.
type Repository interface {
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error)
	// Search matchea por substring de título (case-insensitive) o por id
	// exacto, siempre dentro de las citas del owner.
	Search(ctx context.Context, ownerUserID, query string) ([]Appointment, error)
	Delete(ctx context.Context, id string) error
}
