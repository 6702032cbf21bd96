package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"appointment-calendar/internal/domain/categories"
)

type categoryRepo struct {
	mu   sync.RWMutex
	byID map[string]categories.Category
}

func NewCategoryRepo() categories.Repository {
	return &categoryRepo{
		byID: make(map[string]categories.Category),
	}
}

func (r *categoryRepo) Create(ctx context.Context, c categories.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("category id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("category already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c categories.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return categories.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return categories.Category{}, categories.ErrNotFound
	}
	return c, nil
}

func (r *categoryRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]categories.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]categories.Category, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return categories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
