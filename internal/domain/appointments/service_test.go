package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"appointment-calendar/internal/domain/sharing"
)

type testRepo struct {
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(_ context.Context, a Appointment) error {
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(_ context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ListByOwner(_ context.Context, ownerUserID string) ([]Appointment, error) {
	out := []Appointment{}
	for _, a := range r.byID {
		if a.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Search(_ context.Context, ownerUserID, query string) ([]Appointment, error) {
	q := strings.ToLower(query)
	out := []Appointment{}
	for _, a := range r.byID {
		if a.OwnerUserID != ownerUserID {
			continue
		}
		if a.ID == query || strings.Contains(strings.ToLower(a.Title), q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func validInput() CreateInput {
	return CreateInput{
		Title: "Dental cleaning",
		Start: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedClock()

	cases := []struct {
		name  string
		owner string
		mut   func(*CreateInput)
	}{
		{"missing owner", "", func(in *CreateInput) {}},
		{"missing title", "u1", func(in *CreateInput) { in.Title = "  " }},
		{"missing start", "u1", func(in *CreateInput) { in.Start = time.Time{} }},
		{"end before start", "u1", func(in *CreateInput) { in.End = in.Start.Add(-time.Hour) }},
		{"end equals start", "u1", func(in *CreateInput) { in.End = in.Start }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mut(&in)
			if _, err := svc.Create(context.Background(), tc.owner, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateDefaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedClock()

	a, err := svc.Create(context.Background(), "u1", validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected generated id")
	}
	if a.Status != StatusScheduled {
		t.Fatalf("expected status scheduled, got %s", a.Status)
	}
	if !a.CreatedAt.Equal(svc.now()) || !a.UpdatedAt.Equal(svc.now()) {
		t.Fatal("expected timestamps from injected clock")
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Fatal("expected appointment persisted")
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = fixedClock()

	a, _ := svc.Create(context.Background(), "u1", CreateInput{
		Title:    "Checkup",
		Start:    time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC),
		Location: "Room 2",
		Notes:    "bring records",
	})

	title := "Follow-up"
	clear := ""
	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{
		Title: &title,
		Notes: &clear,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Follow-up" {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}
	if updated.Notes != "" {
		t.Fatalf("expected notes cleared, got %q", updated.Notes)
	}
	// Campos no enviados quedan intactos
	if updated.Location != "Room 2" {
		t.Fatalf("expected location untouched, got %q", updated.Location)
	}
}

func TestUpdateRejectsInvertedRange(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedClock()

	a, _ := svc.Create(context.Background(), "u1", validInput())

	// Mover solo el fin por detrás del inicio existente
	end := a.Start.Add(-time.Minute)
	if _, err := svc.Update(context.Background(), a.ID, UpdateInput{End: &end}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedClock()

	a, _ := svc.Create(context.Background(), "u1", validInput())

	bad := "archived"
	if _, err := svc.Update(context.Background(), a.ID, UpdateInput{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	good := "cancelled"
	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{Status: &good})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", updated.Status)
	}
}

func TestSearch(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedClock()

	a1, _ := svc.Create(context.Background(), "u1", CreateInput{
		Title: "Dentist with Dr. Soto",
		Start: time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC),
	})
	svc.Create(context.Background(), "u1", CreateInput{
		Title: "Vaccination",
		Start: time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC),
	})
	svc.Create(context.Background(), "u2", CreateInput{
		Title: "Dentist too",
		Start: time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 3, 11, 0, 0, 0, time.UTC),
	})

	got, err := svc.Search(context.Background(), "u1", "dentist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != a1.ID {
		t.Fatalf("expected only u1's dentist appointment, got %d results", len(got))
	}

	// Query vacía no devuelve todo
	got, err = svc.Search(context.Background(), "u1", "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for blank query, got %d", len(got))
	}

	// Búsqueda por id exacto
	got, err = svc.Search(context.Background(), "u1", a1.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != a1.ID {
		t.Fatal("expected exact id match")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(newTestRepo())
	if _, err := svc.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOwnerOf(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = fixedClock()

	a, _ := svc.Create(context.Background(), "u1", validInput())

	owner, err := svc.OwnerOf(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "u1" {
		t.Fatalf("expected u1, got %s", owner)
	}

	// La cita inexistente sale como el sentinel de sharing, que es lo
	// que su resolver espera.
	if _, err := svc.OwnerOf(context.Background(), "missing"); !errors.Is(err, sharing.ErrNotFound) {
		t.Fatalf("expected sharing.ErrNotFound, got %v", err)
	}
}

type failingRepo struct {
	*testRepo
	err error
}

func (r *failingRepo) GetByID(_ context.Context, id string) (Appointment, error) {
	return Appointment{}, r.err
}

func TestGetByIDStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("pq: connection refused")
	svc := NewService(&failingRepo{testRepo: newTestRepo(), err: storeErr})

	_, err := svc.GetByID(context.Background(), "a1")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("store error must not collapse into ErrNotFound")
	}

	// OwnerOf tampoco lo disfraza de invitación inválida.
	if _, err := svc.OwnerOf(context.Background(), "a1"); !errors.Is(err, storeErr) {
		t.Fatalf("expected store error from OwnerOf, got %v", err)
	}
}
