package sharing

import "time"

// ResourceKind distingue los dos recursos compartibles.
// @Enum appointment, dashboard
type ResourceKind string

const (
	KindAppointment ResourceKind = "appointment"
	KindDashboard   ResourceKind = "dashboard"
)

func (k ResourceKind) Valid() bool {
	return k == KindAppointment || k == KindDashboard
}

// Permission es el permiso solicitado en la invitación.
// @Enum read, write, full
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
	PermissionFull  Permission = "full"
)

// Rank ordena los permisos para el merge: read < write < full.
// Un permiso desconocido rankea 0 y nunca otorga acceso.
func (p Permission) Rank() int {
	switch p {
	case PermissionRead:
		return 1
	case PermissionWrite:
		return 2
	case PermissionFull:
		return 3
	default:
		return 0
	}
}

// Status del grant. declined está reservado para una futura acción de
// rechazo explícito; hoy nadie lo escribe.
// @Enum pending, accepted, declined
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Level es el resultado de resolver permisos: incluye owner, que domina
// sobre cualquier grant.
type Level string

const (
	LevelOwner Level = "owner"
	LevelFull  Level = "full"
	LevelWrite Level = "write"
	LevelRead  Level = "read"
	LevelNone  Level = "none"
)

func levelOf(p Permission) Level {
	switch p {
	case PermissionFull:
		return LevelFull
	case PermissionWrite:
		return LevelWrite
	case PermissionRead:
		return LevelRead
	default:
		return LevelNone
	}
}

func (l Level) CanRead() bool {
	return l == LevelOwner || l == LevelFull || l == LevelWrite || l == LevelRead
}

func (l Level) CanWrite() bool {
	return l == LevelOwner || l == LevelFull || l == LevelWrite
}

// CanManage habilita compartir el recurso, listar sus grants y borrarlo.
func (l Level) CanManage() bool {
	return l == LevelOwner || l == LevelFull
}

// Subject es la doble llave de un grant: user id (si el invitado ya
// aceptó o ya existía) y/o el email al que se invitó.
type Subject struct {
	UserID string
	Email  string
}

// Matches reporta si la identidad (un user id o un email, según qué
// tenga el caller) coincide con alguna de las dos llaves.
func (s Subject) Matches(identity string) bool {
	if identity == "" {
		return false
	}
	return s.UserID == identity || s.Email == identity
}

// Key identifica al sujeto para dedup. El separador NUL evita colisiones
// entre pares distintos que concatenen igual.
func (s Subject) Key() string {
	return s.UserID + "\x00" + s.Email
}

// Grant es una fila de appointment_assignees o dashboard_access.
type Grant struct {
	ID         string
	Kind       ResourceKind
	ResourceID string

	UserID       string // vacío hasta que el invitado acepta
	InvitedEmail string

	Permission Permission
	Status     Status

	InvitationToken string
	CreatedAt       time.Time
	InvitedBy       string
}

func (g Grant) Subject() Subject {
	return Subject{UserID: g.UserID, Email: g.InvitedEmail}
}

// Identity es quién hace la llamada: user id del token y, si está
// verificado, su email.
type Identity struct {
	UserID string
	Email  string
}
