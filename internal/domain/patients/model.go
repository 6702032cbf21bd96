package patients

import "time"

// Patient representa a la persona para la que se agendan citas.
// Puede ser el propio usuario o un dependiente (hijo, familiar a cargo).
type Patient struct {
	ID          string
	OwnerUserID string

	Name      string
	BirthDate *time.Time

	Phone string
	Email string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
