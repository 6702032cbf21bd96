package mailer

import "context"

// Mailer envía un mail HTML. Es fire-and-forget desde el punto de vista
// del dominio: el que llama decide si un error es fatal (para las
// invitaciones no lo es).
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type Message struct {
	To      string
	Subject string
	HTML    string
}
