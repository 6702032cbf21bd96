package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"appointment-calendar/internal/domain/sharing"
)

// SharingRepo persiste grants en dos tablas con el mismo shape:
// appointment_assignees (resource = appointment_id) y dashboard_access
// (resource = owner_user_id). El kind decide la tabla.
type SharingRepo struct {
	db *sql.DB
}

func NewSharingRepo(db *sql.DB) *SharingRepo {
	return &SharingRepo{db: db}
}

func tableFor(kind sharing.ResourceKind) (table, resourceCol string, ok bool) {
	switch kind {
	case sharing.KindAppointment:
		return "appointment_assignees", "appointment_id", true
	case sharing.KindDashboard:
		return "dashboard_access", "owner_user_id", true
	default:
		return "", "", false
	}
}

func (r *SharingRepo) Create(ctx context.Context, g sharing.Grant) error {
	table, resourceCol, ok := tableFor(g.Kind)
	if !ok {
		return fmt.Errorf("unknown resource kind %q", g.Kind)
	}

	_, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (
			id, %s, user_id, invited_email,
			permission, status, invitation_token,
			created_at, invited_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, table, resourceCol),
		g.ID,
		g.ResourceID,
		toNullString(g.UserID),
		g.InvitedEmail,
		string(g.Permission),
		string(g.Status),
		g.InvitationToken,
		g.CreatedAt,
		g.InvitedBy,
	)
	return err
}

func (r *SharingRepo) GetByID(ctx context.Context, kind sharing.ResourceKind, id string) (sharing.Grant, error) {
	table, resourceCol, ok := tableFor(kind)
	if !ok || strings.TrimSpace(id) == "" {
		return sharing.Grant{}, sharing.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT
			id, %s, user_id, invited_email,
			permission, status, invitation_token,
			created_at, invited_by
		FROM %s
		WHERE id = $1
	`, resourceCol, table), id)

	g, err := scanGrant(row, kind)
	if err == sql.ErrNoRows {
		return sharing.Grant{}, sharing.ErrNotFound
	}
	return g, err
}

func (r *SharingRepo) ListByResource(ctx context.Context, kind sharing.ResourceKind, resourceID string) ([]sharing.Grant, error) {
	table, resourceCol, ok := tableFor(kind)
	if !ok || strings.TrimSpace(resourceID) == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT
			id, %s, user_id, invited_email,
			permission, status, invitation_token,
			created_at, invited_by
		FROM %s
		WHERE %s = $1
		ORDER BY created_at ASC
	`, resourceCol, table, resourceCol), resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGrants(rows, kind)
}

func (r *SharingRepo) ListBySubject(ctx context.Context, kind sharing.ResourceKind, userID, email string) ([]sharing.Grant, error) {
	table, resourceCol, ok := tableFor(kind)
	if !ok {
		return nil, nil
	}
	if strings.TrimSpace(userID) == "" && strings.TrimSpace(email) == "" {
		return nil, nil
	}

	// NULLIF evita que user_id='' o email='' matcheen filas con NULL/''.
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT
			id, %s, user_id, invited_email,
			permission, status, invitation_token,
			created_at, invited_by
		FROM %s
		WHERE user_id = NULLIF($1, '')
		   OR invited_email = NULLIF($2, '')
		ORDER BY created_at ASC
	`, resourceCol, table), userID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectGrants(rows, kind)
}

// AcceptByToken es el flip atómico: el WHERE filtra por token Y status,
// así que de dos accepts concurrentes solo uno afecta la fila; el otro
// no matchea y recibe ErrNotFound, igual que un token inexistente.
func (r *SharingRepo) AcceptByToken(ctx context.Context, kind sharing.ResourceKind, token, userID string) (sharing.Grant, error) {
	table, resourceCol, ok := tableFor(kind)
	if !ok || strings.TrimSpace(token) == "" {
		return sharing.Grant{}, sharing.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE %s
		SET status = 'accepted', user_id = $2
		WHERE invitation_token = $1
		  AND status = 'pending'
		RETURNING
			id, %s, user_id, invited_email,
			permission, status, invitation_token,
			created_at, invited_by
	`, table, resourceCol), token, userID)

	g, err := scanGrant(row, kind)
	if err == sql.ErrNoRows {
		return sharing.Grant{}, sharing.ErrNotFound
	}
	return g, err
}

func (r *SharingRepo) Delete(ctx context.Context, kind sharing.ResourceKind, id string) error {
	table, _, ok := tableFor(kind)
	if !ok {
		return sharing.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sharing.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row rowScanner, kind sharing.ResourceKind) (sharing.Grant, error) {
	var g sharing.Grant
	var userID sql.NullString
	var permission, status string

	if err := row.Scan(
		&g.ID,
		&g.ResourceID,
		&userID,
		&g.InvitedEmail,
		&permission,
		&status,
		&g.InvitationToken,
		&g.CreatedAt,
		&g.InvitedBy,
	); err != nil {
		return sharing.Grant{}, err
	}

	g.Kind = kind
	g.UserID = userID.String
	g.Permission = sharing.Permission(permission)
	g.Status = sharing.Status(status)
	return g, nil
}

func collectGrants(rows *sql.Rows, kind sharing.ResourceKind) ([]sharing.Grant, error) {
	out := make([]sharing.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
