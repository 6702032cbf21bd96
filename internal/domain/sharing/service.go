package sharing

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"appointment-calendar/internal/platform/logger"
	"appointment-calendar/internal/ports/mailer"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")

	// ErrNotFound cubre token inexistente, ya consumido o grant borrado.
	// El mensaje es genérico a propósito: no filtramos cuál de los tres fue.
	ErrNotFound = errors.New("invalid or already accepted invitation")
)

// AppointmentOwnerLookup expone el dueño de una cita sin importar el
// paquete appointments (rompe el ciclo entre ambos dominios). Las
// implementaciones devuelven ErrNotFound (el de este paquete) cuando la
// cita no existe; errores de storage suben sin traducir.
type AppointmentOwnerLookup interface {
	OwnerOf(ctx context.Context, appointmentID string) (string, error)
}

type ServiceConfig struct {
	Mailer  mailer.Mailer // nil => no se mandan invitaciones por mail
	Logger  logger.Logger // nil => Noop
	BaseURL string        // base pública para el link /accept-invitation
}

type Service struct {
	repo   Repository
	owners AppointmentOwnerLookup

	mailer  mailer.Mailer
	log     logger.Logger
	baseURL string

	now      func() time.Time
	newToken func() string
}

func NewService(repo Repository, owners AppointmentOwnerLookup, cfg ServiceConfig) *Service {
	lg := cfg.Logger
	if lg == nil {
		lg = logger.Noop{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &Service{
		repo:     repo,
		owners:   owners,
		mailer:   cfg.Mailer,
		log:      lg,
		baseURL:  baseURL,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

type IssueInput struct {
	Kind       ResourceKind
	ResourceID string
	Email      string
	Permission Permission

	Issuer Identity
}

type IssueResult struct {
	Grant Grant
	// Notified es false cuando el mail falló o no hay mailer. El grant
	// quedó persistido igual: el flujo puede completarse con el token.
	Notified bool
}

// Issue crea un grant pending y notifica al invitado (best-effort).
// El issuer debe ser dueño del recurso o tener full sobre él.
func (s *Service) Issue(ctx context.Context, in IssueInput) (IssueResult, error) {
	resourceID := strings.TrimSpace(in.ResourceID)
	email := strings.TrimSpace(in.Email)
	issuerID := strings.TrimSpace(in.Issuer.UserID)

	if !in.Kind.Valid() || resourceID == "" || email == "" || issuerID == "" {
		return IssueResult{}, ErrInvalidInput
	}
	if in.Permission.Rank() == 0 {
		return IssueResult{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return IssueResult{}, ErrInvalidInput
	}

	ownerID, err := s.resourceOwner(ctx, in.Kind, resourceID)
	if err != nil {
		return IssueResult{}, err
	}
	if err := s.requireManage(ctx, in.Kind, resourceID, ownerID, in.Issuer); err != nil {
		return IssueResult{}, err
	}

	g := Grant{
		ID:              uuid.NewString(),
		Kind:            in.Kind,
		ResourceID:      resourceID,
		InvitedEmail:    email,
		Permission:      in.Permission,
		Status:          StatusPending,
		InvitationToken: s.newToken(),
		CreatedAt:       s.now(),
		InvitedBy:       issuerID,
	}

	// Primero persistir: el grant tiene que quedar resoluble aunque el
	// mail rebote.
	if err := s.repo.Create(ctx, g); err != nil {
		return IssueResult{}, err
	}

	notified := s.notify(ctx, g)
	return IssueResult{Grant: g, Notified: notified}, nil
}

func (s *Service) notify(ctx context.Context, g Grant) bool {
	if s.mailer == nil {
		return false
	}

	link := fmt.Sprintf("%s/accept-invitation?token=%s", s.baseURL, g.InvitationToken)
	msg := mailer.Message{
		To:      g.InvitedEmail,
		Subject: fmt.Sprintf("You are invited to access a %s", g.Kind),
		HTML: fmt.Sprintf(
			`<p>You have been invited to access a %s with %s permission.<br />Click <a href="%s">here</a> to accept the invitation.</p>`,
			g.Kind, g.Permission, link,
		),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("invitation mail failed", map[string]any{
			"grant_id": g.ID,
			"kind":     string(g.Kind),
			"err":      err.Error(),
		})
		return false
	}
	return true
}

// Accept consume un token: flip pending->accepted fijando el user id.
// El namespace de tokens es compartido entre ambos tipos de recurso, así
// que se prueba appointment primero y dashboard después; ese orden está
// fijado acá y en ningún otro lado.
func (s *Service) Accept(ctx context.Context, token, userID string) (ResourceKind, Grant, error) {
	token = strings.TrimSpace(token)
	userID = strings.TrimSpace(userID)
	if token == "" || userID == "" {
		return "", Grant{}, ErrInvalidInput
	}

	g, err := s.repo.AcceptByToken(ctx, KindAppointment, token, userID)
	if err == nil {
		return KindAppointment, g, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", Grant{}, err
	}

	g, err = s.repo.AcceptByToken(ctx, KindDashboard, token, userID)
	if err == nil {
		return KindDashboard, g, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", Grant{}, err
	}

	return "", Grant{}, ErrNotFound
}

// Discard borra el grant (hard delete). Pueden hacerlo el dueño del
// recurso, el propio invitado (por user id o por invited_email) o un
// colaborador accepted con full.
func (s *Service) Discard(ctx context.Context, kind ResourceKind, grantID string, requester Identity) error {
	grantID = strings.TrimSpace(grantID)
	if !kind.Valid() || grantID == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(requester.UserID) == "" && strings.TrimSpace(requester.Email) == "" {
		return ErrForbidden
	}

	g, err := s.repo.GetByID(ctx, kind, grantID)
	if err != nil {
		return err
	}

	if !s.mayDiscard(ctx, g, requester) {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, kind, grantID)
}

func (s *Service) mayDiscard(ctx context.Context, g Grant, requester Identity) bool {
	// El invitado siempre puede descartar su propia invitación.
	if g.Subject().Matches(requester.UserID) || g.Subject().Matches(requester.Email) {
		return true
	}

	lvl, err := s.PermissionFor(ctx, g.Kind, g.ResourceID, requester)
	if err != nil {
		return false
	}
	return lvl.CanManage()
}

// PermissionFor resuelve el nivel del caller sobre un recurso. Resuelve
// por user id y, si no dio acceso, por email (mismo dual-key que usa el
// resolver puro).
func (s *Service) PermissionFor(ctx context.Context, kind ResourceKind, resourceID string, who Identity) (Level, error) {
	resourceID = strings.TrimSpace(resourceID)
	if !kind.Valid() || resourceID == "" {
		return LevelNone, ErrInvalidInput
	}

	ownerID, err := s.resourceOwner(ctx, kind, resourceID)
	if err != nil {
		return LevelNone, err
	}

	grants, err := s.repo.ListByResource(ctx, kind, resourceID)
	if err != nil {
		return LevelNone, err
	}

	lvl := Resolve(ownerID, grants, who.UserID)
	if lvl == LevelNone {
		lvl = Resolve(ownerID, grants, who.Email)
	}
	return lvl, nil
}

// ListForResource devuelve los grants de un recurso, deduplicados para
// mostrar "quién tiene acceso". Solo dueño o full pueden verlos.
func (s *Service) ListForResource(ctx context.Context, kind ResourceKind, resourceID string, requester Identity) ([]Grant, error) {
	lvl, err := s.PermissionFor(ctx, kind, resourceID, requester)
	if err != nil {
		return nil, err
	}
	if !lvl.CanManage() {
		return nil, ErrForbidden
	}

	grants, err := s.repo.ListByResource(ctx, kind, resourceID)
	if err != nil {
		return nil, err
	}
	return Dedup(grants), nil
}

// ListForIdentity lista las invitaciones/accesos del caller en ambas
// tablas (bandeja de invitaciones de la UI).
func (s *Service) ListForIdentity(ctx context.Context, who Identity) (appointments, dashboards []Grant, err error) {
	userID := strings.TrimSpace(who.UserID)
	email := strings.TrimSpace(who.Email)
	if userID == "" && email == "" {
		return nil, nil, ErrInvalidInput
	}

	appointments, err = s.repo.ListBySubject(ctx, KindAppointment, userID, email)
	if err != nil {
		return nil, nil, err
	}
	dashboards, err = s.repo.ListBySubject(ctx, KindDashboard, userID, email)
	if err != nil {
		return nil, nil, err
	}
	return appointments, dashboards, nil
}

func (s *Service) requireManage(ctx context.Context, kind ResourceKind, resourceID, ownerID string, who Identity) error {
	if who.UserID != "" && who.UserID == ownerID {
		return nil
	}

	grants, err := s.repo.ListByResource(ctx, kind, resourceID)
	if err != nil {
		return err
	}
	lvl := Resolve(ownerID, grants, who.UserID)
	if lvl == LevelNone {
		lvl = Resolve(ownerID, grants, who.Email)
	}
	if !lvl.CanManage() {
		return ErrForbidden
	}
	return nil
}

// resourceOwner: para dashboards el resource id ES el user id del dueño,
// igual que dashboard_access.owner_user_id en el schema.
func (s *Service) resourceOwner(ctx context.Context, kind ResourceKind, resourceID string) (string, error) {
	if kind == KindDashboard {
		return resourceID, nil
	}

	ownerID, err := s.owners.OwnerOf(ctx, resourceID)
	if err != nil {
		// ErrNotFound (cita inexistente) o error de storage: sube tal
		// cual, el handler decide el status.
		return "", err
	}
	if strings.TrimSpace(ownerID) == "" {
		return "", ErrNotFound
	}
	return ownerID, nil
}
