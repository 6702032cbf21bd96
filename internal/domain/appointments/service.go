package appointments

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
	Title    string
	Start    time.Time
	End      time.Time
	Location string

	PatientID  string
	CategoryID string

	Notes       string
	Attachments []string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return Appointment{}, ErrInvalidInput
	}
	if !in.End.After(in.Start) {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Title:       strings.TrimSpace(in.Title),
		Start:       in.Start,
		End:         in.End,
		Location:    strings.TrimSpace(in.Location),
		PatientID:   strings.TrimSpace(in.PatientID),
		CategoryID:  strings.TrimSpace(in.CategoryID),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      StatusScheduled,
		Attachments: in.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Appointment{}, ErrInvalidInput
	}
	// El repo devuelve ErrNotFound cuando el id no existe; cualquier otro
	// error es del storage y sube tal cual.
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Search(ctx context.Context, ownerUserID, query string) ([]Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []Appointment{}, nil
	}
	return s.repo.Search(ctx, ownerUserID, query)
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
// Strings vacíos limpian el campo (location, patient, category, notes).
type UpdateInput struct {
	Title    *string
	Start    *time.Time
	End      *time.Time
	Location *string

	PatientID  *string
	CategoryID *string

	Notes       *string
	Status      *string
	Attachments *[]string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return Appointment{}, ErrInvalidInput
		}
		a.Title = t
	}
	if in.Start != nil {
		a.Start = *in.Start
	}
	if in.End != nil {
		a.End = *in.End
	}
	if !a.End.After(a.Start) {
		return Appointment{}, ErrInvalidInput
	}
	if in.Location != nil {
		a.Location = strings.TrimSpace(*in.Location)
	}
	if in.PatientID != nil {
		a.PatientID = strings.TrimSpace(*in.PatientID)
	}
	if in.CategoryID != nil {
		a.CategoryID = strings.TrimSpace(*in.CategoryID)
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if !validStatus(st) {
			return Appointment{}, ErrInvalidInput
		}
		a.Status = st
	}
	if in.Attachments != nil {
		a.Attachments = *in.Attachments
	}

	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
