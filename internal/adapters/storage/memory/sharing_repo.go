package memory

import (
	"context"
	"errors"
	"sync"

	"appointment-calendar/internal/domain/sharing"
)

type sharingRepo struct {
	mu     sync.RWMutex
	byKind map[sharing.ResourceKind]map[string]sharing.Grant
}

func NewSharingRepo() sharing.Repository {
	return &sharingRepo{
		byKind: map[sharing.ResourceKind]map[string]sharing.Grant{
			sharing.KindAppointment: {},
			sharing.KindDashboard:   {},
		},
	}
}

func (r *sharingRepo) Create(ctx context.Context, g sharing.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if !g.Kind.Valid() {
		return errors.New("grant kind required")
	}
	if _, exists := r.byKind[g.Kind][g.ID]; exists {
		return errors.New("grant already exists")
	}
	r.byKind[g.Kind][g.ID] = g
	return nil
}

func (r *sharingRepo) GetByID(ctx context.Context, kind sharing.ResourceKind, id string) (sharing.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byKind[kind][id]
	if !ok {
		return sharing.Grant{}, sharing.ErrNotFound
	}
	return g, nil
}

func (r *sharingRepo) ListByResource(ctx context.Context, kind sharing.ResourceKind, resourceID string) ([]sharing.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sharing.Grant, 0)
	for _, g := range r.byKind[kind] {
		if g.ResourceID == resourceID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *sharingRepo) ListBySubject(ctx context.Context, kind sharing.ResourceKind, userID, email string) ([]sharing.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sharing.Grant, 0)
	for _, g := range r.byKind[kind] {
		if (userID != "" && g.UserID == userID) || (email != "" && g.InvitedEmail == email) {
			out = append(out, g)
		}
	}
	return out, nil
}

// AcceptByToken hace el check-and-flip bajo el mismo lock, el análogo
// in-memory del UPDATE filtrado por token y status del adapter de
// postgres.
func (r *sharingRepo) AcceptByToken(ctx context.Context, kind sharing.ResourceKind, token, userID string) (sharing.Grant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, g := range r.byKind[kind] {
		if g.InvitationToken != token {
			continue
		}
		if g.Status != sharing.StatusPending {
			// token ya consumido: mismo error que inexistente
			return sharing.Grant{}, sharing.ErrNotFound
		}
		g.Status = sharing.StatusAccepted
		g.UserID = userID
		r.byKind[kind][id] = g
		return g, nil
	}
	return sharing.Grant{}, sharing.ErrNotFound
}

func (r *sharingRepo) Delete(ctx context.Context, kind sharing.ResourceKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKind[kind][id]; !ok {
		return sharing.ErrNotFound
	}
	delete(r.byKind[kind], id)
	return nil
}
