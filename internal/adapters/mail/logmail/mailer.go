package logmail

import (
	"context"

	"appointment-calendar/internal/platform/logger"
	"appointment-calendar/internal/ports/mailer"
)

// Mailer de desarrollo: loguea el mail en vez de mandarlo. Útil cuando
// no hay SMTP configurado y el flujo sigue siendo completable copiando
// el token del log.
type Mailer struct {
	log logger.Logger
}

func New(log logger.Logger) *Mailer {
	if log == nil {
		log = logger.Noop{}
	}
	return &Mailer{log: log}
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	m.log.Info("mail (dev, not sent)", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	return nil
}
