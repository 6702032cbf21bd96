package patients

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Patient
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Patient{}}
}

func (r *testRepo) Create(_ context.Context, p Patient) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(_ context.Context, ownerUserID string) ([]Patient, error) {
	out := []Patient{}
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "", CreateInput{Name: "Ana"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing owner, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", CreateInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", CreateInput{Name: "Ana", Email: "not-an-email"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Create(context.Background(), "u1", CreateInput{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), p.ID, "u2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID, "u2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	got, err := svc.GetByID(context.Background(), p.ID, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ana" {
		t.Fatalf("expected Ana, got %q", got.Name)
	}
}

func TestUpdateBirthDatePatch(t *testing.T) {
	svc := NewService(newTestRepo())

	bd := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	p, _ := svc.Create(context.Background(), "u1", CreateInput{Name: "Ana", BirthDate: &bd})

	// Campo no enviado: se conserva
	phone := "+51 999 888 777"
	updated, err := svc.Update(context.Background(), p.ID, "u1", UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.BirthDate == nil || !updated.BirthDate.Equal(bd) {
		t.Fatal("expected birth date untouched")
	}

	// Enviado como null: se limpia
	updated, err = svc.Update(context.Background(), p.ID, "u1", UpdateInput{
		BirthDate: BirthDatePatch{Present: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.BirthDate != nil {
		t.Fatal("expected birth date cleared")
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, _ := svc.Create(context.Background(), "u1", CreateInput{Name: "Ana"})
	if err := svc.Delete(context.Background(), p.ID, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[p.ID]; ok {
		t.Fatal("expected patient removed")
	}
	if err := svc.Delete(context.Background(), p.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type failingRepo struct {
	*testRepo
	err error
}

func (r *failingRepo) GetByID(_ context.Context, id string) (Patient, error) {
	return Patient{}, r.err
}

func TestGetByIDStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("pq: connection refused")
	svc := NewService(&failingRepo{testRepo: newTestRepo(), err: storeErr})

	_, err := svc.GetByID(context.Background(), "p1", "u1")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("store error must not collapse into ErrNotFound")
	}
}
