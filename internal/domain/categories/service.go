package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// validColor acepta solo #rrggbb en minúsculas o mayúsculas.
func validColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func (s *Service) Create(ctx context.Context, ownerUserID, name, color string) (Category, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Category{}, ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrInvalidInput
	}
	color = strings.TrimSpace(color)
	if !validColor(color) {
		return Category{}, ErrInvalidInput
	}

	now := s.now()
	c := Category{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Color:       strings.ToLower(color),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id, callerUserID string) (Category, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Category{}, err
	}
	if c.OwnerUserID != callerUserID {
		return Category{}, ErrForbidden
	}
	return c, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Category, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name  *string
	Color *string
}

func (s *Service) Update(ctx context.Context, id, callerUserID string, in UpdateInput) (Category, error) {
	c, err := s.GetByID(ctx, id, callerUserID)
	if err != nil {
		return Category{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Category{}, ErrInvalidInput
		}
		c.Name = name
	}
	if in.Color != nil {
		color := strings.TrimSpace(*in.Color)
		if !validColor(color) {
			return Category{}, ErrInvalidInput
		}
		c.Color = strings.ToLower(color)
	}

	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id, callerUserID string) error {
	id = strings.TrimSpace(id)
	if _, err := s.GetByID(ctx, id, callerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
