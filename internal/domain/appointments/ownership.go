package appointments

import (
	"context"
	"errors"

	"appointment-calendar/internal/domain/sharing"
)

// OwnerOf expone el owner de una cita. Lo consume el módulo sharing vía
// su interface AppointmentOwnerLookup (evita ciclos de imports). Una
// cita inexistente se traduce al sentinel de sharing; errores de
// storage suben sin tocar.
func (s *Service) OwnerOf(ctx context.Context, appointmentID string) (string, error) {
	a, err := s.GetByID(ctx, appointmentID)
	if errors.Is(err, ErrNotFound) {
		return "", sharing.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return a.OwnerUserID, nil
}
