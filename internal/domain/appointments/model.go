package appointments

import "time"

// Status del turno.
// @Enum scheduled, cancelled, done
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusDone      Status = "done"
)

func validStatus(s Status) bool {
	return s == StatusScheduled || s == StatusCancelled || s == StatusDone
}

// Appointment representa una cita del calendario. PatientID y CategoryID
// son referencias blandas a los módulos patients/categories (pueden venir
// vacías). Attachments guarda paths de storage; la subida en sí no pasa
// por este servicio.
type Appointment struct {
	ID          string
	OwnerUserID string

	Title    string
	Start    time.Time
	End      time.Time
	Location string

	PatientID  string
	CategoryID string

	Notes       string
	Status      Status
	Attachments []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
