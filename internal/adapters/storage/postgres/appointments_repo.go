package postgres

import (
	"context"
	"database/sql"
	"strings"

	"appointment-calendar/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, owner_user_id, title, start_at, end_at, location,
			patient_id, category_id, notes, status, attachments,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.OwnerUserID,
		a.Title,
		a.Start,
		a.End,
		a.Location,
		toNullString(a.PatientID),
		toNullString(a.CategoryID),
		a.Notes,
		string(a.Status),
		attachmentsArray(a.Attachments),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			title = $2,
			start_at = $3,
			end_at = $4,
			location = $5,
			patient_id = $6,
			category_id = $7,
			notes = $8,
			status = $9,
			attachments = $10,
			updated_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.Title,
		a.Start,
		a.End,
		a.Location,
		toNullString(a.PatientID),
		toNullString(a.CategoryID),
		a.Notes,
		string(a.Status),
		attachmentsArray(a.Attachments),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, title, start_at, end_at, location,
			patient_id, category_id, notes, status, attachments,
			created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, err
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]appointments.Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, title, start_at, end_at, location,
			patient_id, category_id, notes, status, attachments,
			created_at, updated_at
		FROM appointments
		WHERE owner_user_id = $1
		ORDER BY start_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentsRepo) Search(ctx context.Context, ownerUserID, query string) ([]appointments.Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	query = strings.TrimSpace(query)
	if ownerUserID == "" || query == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, title, start_at, end_at, location,
			patient_id, category_id, notes, status, attachments,
			created_at, updated_at
		FROM appointments
		WHERE owner_user_id = $1
		  AND (title ILIKE '%' || $2 || '%' OR id = $2)
		ORDER BY start_at ASC
	`, ownerUserID, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var patientID, categoryID sql.NullString
	var status string
	var attachments []string

	if err := row.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.Title,
		&a.Start,
		&a.End,
		&a.Location,
		&patientID,
		&categoryID,
		&a.Notes,
		&status,
		&attachments,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	a.PatientID = patientID.String
	a.CategoryID = categoryID.String
	a.Status = appointments.Status(status)
	a.Attachments = attachments
	return a, nil
}

func collectAppointments(rows *sql.Rows) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func attachmentsArray(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	return in
}
