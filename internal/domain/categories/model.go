package categories

import "time"

// Category es una etiqueta de usuario para clasificar citas (ej. "Dentista",
// "Colegio") con un color para el calendario.
type Category struct {
	ID          string
	OwnerUserID string

	Name  string
	Color string // #rrggbb

	CreatedAt time.Time
	UpdatedAt time.Time
}
