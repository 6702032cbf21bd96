package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"appointment-calendar/internal/domain/sharing"
	"appointment-calendar/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, sharingSvc *sharing.Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/search", searchAppointmentsHandler(svc))

		// Lectura/escritura con resolución de permisos (owner o grant)
		ar.Get("/{appointmentID}", getAppointmentHandler(svc, sharingSvc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc, sharingSvc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc, sharingSvc))
		ar.Get("/{appointmentID}/ics", exportICSHandler(svc, sharingSvc))
	})

	// Citas compartidas conmigo
	r.Get("/me/appointments", listSharedAppointmentsHandler(svc, sharingSvc))
}

type createAppointmentRequest struct {
	Title    string `json:"title"`
	Start    string `json:"start"` // RFC3339
	End      string `json:"end"`   // RFC3339
	Location string `json:"location"`

	PatientID  string `json:"patient_id"`
	CategoryID string `json:"category_id"`

	Notes       string   `json:"notes"`
	Attachments []string `json:"attachments"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`

	PatientID  string `json:"patient_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`

	Notes       string   `json:"notes,omitempty"`
	Status      Status   `json:"status"`
	Attachments []string `json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updateAppointmentRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Title    *string `json:"title"`
	Start    *string `json:"start"`
	End      *string `json:"end"`
	Location *string `json:"location"`

	PatientID  *string `json:"patient_id"`
	CategoryID *string `json:"category_id"`

	Notes       *string   `json:"notes"`
	Status      *string   `json:"status"`
	Attachments *[]string `json:"attachments"`
}

type sharedAppointmentResponse struct {
	Appointment appointmentResponse `json:"appointment"`
	Permission  string              `json:"permission"`
	GrantID     string              `json:"grant_id"`
}

// createAppointmentHandler
//
// @Summary Create appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Success 201 {object} appointmentResponse
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := parseRFC3339(req.Start)
		if err != nil {
			http.Error(w, "start must be RFC3339", http.StatusBadRequest)
			return
		}
		end, err := parseRFC3339(req.End)
		if err != nil {
			http.Error(w, "end must be RFC3339", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Title:       req.Title,
			Start:       start,
			End:         end,
			Location:    req.Location,
			PatientID:   req.PatientID,
			CategoryID:  req.CategoryID,
			Notes:       req.Notes,
			Attachments: req.Attachments,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	// Owner-only (las compartidas van por /me/appointments)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// searchAppointmentsHandler busca por título o id exacto dentro de las
// citas del caller.
//
// @Summary Search my appointments
// @Tags appointments
// @Produce json
// @Router /appointments/search [get]
func searchAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Search(r.Context(), claims.UserID, r.URL.Query().Get("query"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service, sharingSvc *sharing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, lvl, ok := loadWithPermission(w, r, svc, sharingSvc)
		if !ok {
			return
		}
		if !lvl.CanRead() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func updateAppointmentHandler(svc *Service, sharingSvc *sharing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, lvl, ok := loadWithPermission(w, r, svc, sharingSvc)
		if !ok {
			return
		}
		if !lvl.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req updateAppointmentRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Title:       req.Title,
			Location:    req.Location,
			PatientID:   req.PatientID,
			CategoryID:  req.CategoryID,
			Notes:       req.Notes,
			Status:      req.Status,
			Attachments: req.Attachments,
		}
		if req.Start != nil {
			t, err := parseRFC3339(*req.Start)
			if err != nil {
				http.Error(w, "start must be RFC3339", http.StatusBadRequest)
				return
			}
			in.Start = &t
		}
		if req.End != nil {
			t, err := parseRFC3339(*req.End)
			if err != nil {
				http.Error(w, "end must be RFC3339", http.StatusBadRequest)
				return
			}
			in.End = &t
		}

		updated, err := svc.Update(r.Context(), a.ID, in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "appointment not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(updated))
	}
}

func deleteAppointmentHandler(svc *Service, sharingSvc *sharing.Service) http.HandlerFunc {
	// Borrar exige owner o full
	return func(w http.ResponseWriter, r *http.Request) {
		a, lvl, ok := loadWithPermission(w, r, svc, sharingSvc)
		if !ok {
			return
		}
		if !lvl.CanManage() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), a.ID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// exportICSHandler devuelve la cita como text/calendar.
//
// @Summary Export appointment as ICS
// @Tags appointments
// @Produce text/calendar
// @Router /appointments/{appointmentID}/ics [get]
func exportICSHandler(svc *Service, sharingSvc *sharing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, lvl, ok := loadWithPermission(w, r, svc, sharingSvc)
		if !ok {
			return
		}
		if !lvl.CanRead() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ics, err := ToICS(a)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="appointment.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ics))
	}
}

func listSharedAppointmentsHandler(svc *Service, sharingSvc *sharing.Service) http.HandlerFunc {
	// Citas donde el caller tiene un grant accepted
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grants, _, err := sharingSvc.ListForIdentity(r.Context(), sharing.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		seen := map[string]struct{}{}
		out := make([]sharedAppointmentResponse, 0)

		for _, g := range sharing.Dedup(grants) {
			if g.Status != sharing.StatusAccepted {
				continue
			}
			if _, ok := seen[g.ResourceID]; ok {
				continue
			}
			seen[g.ResourceID] = struct{}{}

			a, err := svc.GetByID(r.Context(), g.ResourceID)
			if errors.Is(err, ErrNotFound) {
				// tolera grants huérfanos (cita borrada)
				continue
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			out = append(out, sharedAppointmentResponse{
				Appointment: toAppointmentResponse(a),
				Permission:  string(g.Permission),
				GrantID:     g.ID,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// loadWithPermission carga la cita y resuelve el nivel del caller.
// Escribe la respuesta de error y devuelve ok=false si algo falla.
func loadWithPermission(w http.ResponseWriter, r *http.Request, svc *Service, sharingSvc *sharing.Service) (Appointment, sharing.Level, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return Appointment{}, sharing.LevelNone, false
	}

	appointmentID := chi.URLParam(r, "appointmentID")
	a, err := svc.GetByID(r.Context(), appointmentID)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return Appointment{}, sharing.LevelNone, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return Appointment{}, sharing.LevelNone, false
	}

	lvl, err := sharingSvc.PermissionFor(r.Context(), sharing.KindAppointment, a.ID, sharing.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return Appointment{}, sharing.LevelNone, false
	}

	return a, lvl, true
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(s))
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		OwnerUserID: a.OwnerUserID,
		Title:       a.Title,
		Start:       a.Start,
		End:         a.End,
		Location:    a.Location,
		PatientID:   a.PatientID,
		CategoryID:  a.CategoryID,
		Notes:       a.Notes,
		Status:      a.Status,
		Attachments: a.Attachments,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
