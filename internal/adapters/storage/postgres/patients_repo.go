package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"appointment-calendar/internal/domain/patients"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Create(ctx context.Context, p patients.Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id, owner_user_id, name, birth_date,
			phone, email, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		toNullTime(p.BirthDate),
		p.Phone,
		p.Email,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PatientsRepo) Update(ctx context.Context, p patients.Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients
		SET
			name = $2,
			birth_date = $3,
			phone = $4,
			email = $5,
			notes = $6,
			updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		toNullTime(p.BirthDate),
		p.Phone,
		p.Email,
		p.Notes,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func (r *PatientsRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return patients.Patient{}, patients.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, name, birth_date,
			phone, email, notes,
			created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id)

	p, err := scanPatient(row)
	if err == sql.ErrNoRows {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, err
}

func (r *PatientsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]patients.Patient, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, name, birth_date,
			phone, email, notes,
			created_at, updated_at
		FROM patients
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]patients.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PatientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return patients.ErrNotFound
	}
	return nil
}

func scanPatient(row rowScanner) (patients.Patient, error) {
	var p patients.Patient
	var birthDate sql.NullTime

	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&birthDate,
		&p.Phone,
		&p.Email,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return patients.Patient{}, err
	}

	if birthDate.Valid {
		t := birthDate.Time
		p.BirthDate = &t
	}
	return p, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
