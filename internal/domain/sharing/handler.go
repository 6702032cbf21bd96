package sharing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"appointment-calendar/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Invitaciones (ambos tipos de recurso)
	r.Route("/invitations", func(ir chi.Router) {
		ir.Post("/", issueInvitationHandler(svc))
		ir.Get("/", listMyInvitationsHandler(svc))
		ir.Post("/accept", acceptInvitationHandler(svc))
	})

	// Permisos / grants por cita. Paths sueltos (sin Route) porque el
	// prefijo /appointments ya lo monta el módulo appointments.
	r.Get("/appointments/{appointmentID}/permissions", permissionsHandler(svc, KindAppointment))
	r.Get("/appointments/{appointmentID}/grants", listGrantsHandler(svc, KindAppointment))
	r.Delete("/appointments/grants/{grantID}", discardGrantHandler(svc, KindAppointment))

	// Permisos / grants del dashboard (resource id = user id del dueño)
	r.Get("/dashboard/{ownerUserID}/permissions", permissionsHandler(svc, KindDashboard))
	r.Get("/dashboard/{ownerUserID}/grants", listGrantsHandler(svc, KindDashboard))
	r.Delete("/dashboard/grants/{grantID}", discardGrantHandler(svc, KindDashboard))
}

type issueInvitationRequest struct {
	Type       string `json:"type"` // appointment | dashboard
	Email      string `json:"email"`
	ResourceID string `json:"resource_id"`
	Permission string `json:"permission"`
}

type issueInvitationResponse struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Notified bool   `json:"notified"`
}

type grantResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	ResourceID      string    `json:"resource_id"`
	UserID          string    `json:"user_id,omitempty"`
	InvitedEmail    string    `json:"invited_email"`
	Permission      string    `json:"permission"`
	Status          string    `json:"status"`
	InvitationToken string    `json:"invitation_token,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	InvitedBy       string    `json:"invited_by"`
}

// issueInvitationHandler crea el grant pending y dispara el mail.
//
// @Summary Send invitation (appointment or dashboard)
// @Tags invitations
// @Accept json
// @Produce json
// @Success 201 {object} issueInvitationResponse
// @Router /invitations [post]
func issueInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req issueInvitationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Issue(r.Context(), IssueInput{
			Kind:       ResourceKind(strings.TrimSpace(req.Type)),
			ResourceID: req.ResourceID,
			Email:      req.Email,
			Permission: Permission(strings.TrimSpace(req.Permission)),
			Issuer:     Identity{UserID: claims.UserID, Email: claims.Email},
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, issueInvitationResponse{
			Message:  "invitation sent",
			Token:    res.Grant.InvitationToken,
			Notified: res.Notified,
		})
	}
}

type myInvitationsResponse struct {
	AppointmentInvitations []grantResponse `json:"appointment_invitations"`
	DashboardInvitations   []grantResponse `json:"dashboard_invitations"`
}

// listMyInvitationsHandler: bandeja del caller, matcheada por user id o email.
//
// @Summary List my invitations
// @Tags invitations
// @Produce json
// @Success 200 {object} myInvitationsResponse
// @Router /invitations [get]
func listMyInvitationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		apts, dashes, err := svc.ListForIdentity(r.Context(), Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, myInvitationsResponse{
			AppointmentInvitations: toGrantResponses(apts, true),
			DashboardInvitations:   toGrantResponses(dashes, true),
		})
	}
}

type acceptInvitationRequest struct {
	Token string `json:"token"`
}

// acceptInvitationHandler consume el token y ata el grant al caller.
//
// @Summary Accept invitation by token
// @Tags invitations
// @Accept json
// @Produce json
// @Router /invitations/accept [post]
func acceptInvitationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req acceptInvitationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		kind, _, err := svc.Accept(r.Context(), req.Token, claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": string(kind) + " invitation accepted",
			"type":    string(kind),
		})
	}
}

// permissionsHandler devuelve el nivel del caller sobre el recurso.
//
// @Summary Resolve caller permission on a resource
// @Tags permissions
// @Produce json
// @Router /appointments/{appointmentID}/permissions [get]
func permissionsHandler(svc *Service, kind ResourceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		resourceID := resourceParam(r, kind)
		lvl, err := svc.PermissionFor(r.Context(), kind, resourceID, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"permission": string(lvl)})
	}
}

// listGrantsHandler: lista deduplicada de "quién tiene acceso".
// Solo dueño o full.
func listGrantsHandler(svc *Service, kind ResourceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		resourceID := resourceParam(r, kind)
		grants, err := svc.ListForResource(r.Context(), kind, resourceID, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toGrantResponses(grants, false))
	}
}

// discardGrantHandler borra el grant (dueño, invitado o full).
func discardGrantHandler(svc *Service, kind ResourceKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		grantID := chi.URLParam(r, "grantID")
		err := svc.Discard(r.Context(), kind, grantID, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func resourceParam(r *http.Request, kind ResourceKind) string {
	if kind == KindDashboard {
		return chi.URLParam(r, "ownerUserID")
	}
	return chi.URLParam(r, "appointmentID")
}

// toGrantResponses arma la vista JSON. El token solo viaja cuando el
// listado es la bandeja del propio invitado: en "quién tiene acceso" un
// full ajeno no puede ver (ni consumir) tokens pending de otros.
func toGrantResponses(grants []Grant, withToken bool) []grantResponse {
	out := make([]grantResponse, 0, len(grants))
	for _, g := range grants {
		gr := grantResponse{
			ID:           g.ID,
			Type:         string(g.Kind),
			ResourceID:   g.ResourceID,
			UserID:       g.UserID,
			InvitedEmail: g.InvitedEmail,
			Permission:   string(g.Permission),
			Status:       string(g.Status),
			CreatedAt:    g.CreatedAt,
			InvitedBy:    g.InvitedBy,
		}
		if withToken {
			gr.InvitationToken = g.InvitationToken
		}
		out = append(out, gr)
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		// Error de storage: este surface es interno y autenticado, el
		// mensaje va tal cual.
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
