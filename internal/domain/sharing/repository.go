package sharing

import "context"

// Repository persiste grants de ambos tipos. Los adapters devuelven
// ErrNotFound (el sentinel de este paquete) para miss; cualquier otro
// error sube tal cual al caller.
type Repository interface {
	Create(ctx context.Context, g Grant) error
	GetByID(ctx context.Context, kind ResourceKind, id string) (Grant, error)
	ListByResource(ctx context.Context, kind ResourceKind, resourceID string) ([]Grant, error)
	ListBySubject(ctx context.Context, kind ResourceKind, userID, email string) ([]Grant, error)

	// AcceptByToken hace el flip pending->accepted fijando user_id, en
	// una sola operación filtrada por token Y status. Dos accepts
	// concurrentes del mismo token: exactamente uno gana, el otro
	// recibe ErrNotFound. Token inexistente o ya consumido también es
	// ErrNotFound.
	AcceptByToken(ctx context.Context, kind ResourceKind, token, userID string) (Grant, error)

	Delete(ctx context.Context, kind ResourceKind, id string) error
}
