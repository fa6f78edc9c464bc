// Package notify sends transactional email.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/wneessen/go-mail"

	"github.com/SARVESHVARADKAR123/memberclub/internal/model"
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type SMTPOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// Bcc, when set, receives a copy of every mentor request email.
	Bcc string
}

type Mailer struct {
	client sender
	from   string
	bcc    string
}

// NewMailer builds an SMTP client using STARTTLS, authenticating only when a
// user is configured.
func NewMailer(o SMTPOptions) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(o.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if o.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(o.User),
			mail.WithPassword(o.Password),
		)
	}

	c, err := mail.NewClient(o.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: c, from: o.From, bcc: o.Bcc}, nil
}

var mentorRequestBody = template.Must(template.New("mentor_request").Parse(
	`Hello {{.MentorName}},

{{.FromName}} would like you to mentor them.
{{if .Message}}
Their message:
{{.Message}}
{{end}}
You can reply to them at {{.FromEmail}}.
`))

func (m *Mailer) buildMentorRequest(e model.MentorRequestCreated) (*mail.Msg, error) {
	if e.MentorEmail == "" {
		return nil, errors.New("mentor has no email address")
	}

	var body bytes.Buffer
	if err := mentorRequestBody.Execute(&body, e); err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := msg.To(e.MentorEmail); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	if e.FromEmail != "" {
		if err := msg.ReplyTo(e.FromEmail); err != nil {
			return nil, fmt.Errorf("reply-to: %w", err)
		}
	}
	if m.bcc != "" {
		if err := msg.Bcc(m.bcc); err != nil {
			return nil, fmt.Errorf("bcc: %w", err)
		}
	}
	msg.Subject("New mentorship request from " + e.FromName)
	msg.SetBodyString(mail.TypeTextPlain, body.String())
	return msg, nil
}

// NotifyMentorRequest emails the mentor about a new request.
func (m *Mailer) NotifyMentorRequest(ctx context.Context, e model.MentorRequestCreated) error {
	msg, err := m.buildMentorRequest(e)
	if err != nil {
		return err
	}
	return m.client.DialAndSendWithContext(ctx, msg)
}
