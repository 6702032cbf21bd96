package patients

import (
	"context"
	"errors"
	"net/mail"
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

type CreateInput struct {
	Name      string
	BirthDate *time.Time
	Phone     string
	Email     string
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Patient, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Patient{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Patient{}, ErrInvalidInput
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return Patient{}, ErrInvalidInput
		}
	}

	now := s.now()
	p := Patient{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		BirthDate:   in.BirthDate,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       email,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// GetByID devuelve el paciente solo si pertenece al caller.
func (s *Service) GetByID(ctx context.Context, id, callerUserID string) (Patient, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Patient{}, err
	}
	if p.OwnerUserID != callerUserID {
		return Patient{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Patient, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// BirthDatePatch diferencia "no enviado" de "enviar null para limpiar".
type BirthDatePatch struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	BirthDate BirthDatePatch
	Phone     *string
	Email     *string
	Notes     *string
}

func (s *Service) Update(ctx context.Context, id, callerUserID string, in UpdateInput) (Patient, error) {
	p, err := s.GetByID(ctx, id, callerUserID)
	if err != nil {
		return Patient{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Patient{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return Patient{}, ErrInvalidInput
			}
		}
		p.Email = email
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id, callerUserID string) error {
	id = strings.TrimSpace(id)
	if _, err := s.GetByID(ctx, id, callerUserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
