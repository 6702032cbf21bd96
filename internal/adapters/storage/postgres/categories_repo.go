package postgres

import (
	"context"
	"database/sql"
	"strings"

	"appointment-calendar/internal/domain/categories"
)

type CategoriesRepo struct {
	db *sql.DB
}

func NewCategoriesRepo(db *sql.DB) *CategoriesRepo {
	return &CategoriesRepo{db: db}
}

func (r *CategoriesRepo) Create(ctx context.Context, c categories.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (
			id, owner_user_id, name, color, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Color,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CategoriesRepo) Update(ctx context.Context, c categories.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $2, color = $3, updated_at = $4
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.Color,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return categories.ErrNotFound
	}
	return nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, id string) (categories.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return categories.Category{}, categories.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, name, color, created_at, updated_at
		FROM categories
		WHERE id = $1
	`, id)

	var c categories.Category
	if err := row.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return categories.Category{}, categories.ErrNotFound
		}
		return categories.Category{}, err
	}
	return c, nil
}

func (r *CategoriesRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]categories.Category, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, color, created_at, updated_at
		FROM categories
		WHERE owner_user_id = $1
		ORDER BY name ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]categories.Category, 0)
	for rows.Next() {
		var c categories.Category
		if err := rows.Scan(&c.ID, &c.OwnerUserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoriesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return categories.ErrNotFound
	}
	return nil
}
