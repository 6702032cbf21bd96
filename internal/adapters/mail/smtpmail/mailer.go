package smtpmail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"

	"appointment-calendar/internal/ports/mailer"
)

var (
	ErrNotConfigured = errors.New("smtp mailer not configured")
)

// Config del mailer SMTP. Addr es host:port; User/Pass habilitan PLAIN
// auth (vacíos => sin auth, típico en un relay local o mailhog).
type Config struct {
	Addr string
	From string
	User string
	Pass string
}

// Mailer manda mails HTML por SMTP plano con net/smtp. Suficiente para
// el volumen de invitaciones; un proveedor transaccional entraría como
// otro adapter detrás del mismo port.
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
}

func New(cfg Config) (*Mailer, error) {
	addr := strings.TrimSpace(cfg.Addr)
	from := strings.TrimSpace(cfg.From)
	if addr == "" || from == "" {
		return nil, ErrNotConfigured
	}
	if _, err := mail.ParseAddress(from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}

	var auth smtp.Auth
	if strings.TrimSpace(cfg.User) != "" {
		host := addr
		if i := strings.LastIndex(addr, ":"); i >= 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, host)
	}

	return &Mailer{addr: addr, from: from, auth: auth}, nil
}

func (m *Mailer) Send(ctx context.Context, msg mailer.Message) error {
	if m == nil || m.addr == "" {
		return ErrNotConfigured
	}
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return errors.New("recipient required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)

	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(b.String()))
}

// sanitizeHeader corta CR/LF para que un subject no inyecte headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
