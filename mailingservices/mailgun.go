package mailingservices

import (
	"context"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/techagentng/civiceye/config"
)

type Mailer interface {
	SendMail(ctx context.Context, subject, body, recipient string) error
}

type sender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// Mailgun sends plain-text mail through the Mailgun HTTP API.
type Mailgun struct {
	Client sender
	From   string
}

// Init builds the Mailgun client from configuration. It returns nil when Mailgun is not configured.
func Init(conf *config.Config) *Mailgun {
	if conf.MgDomain == "" || conf.MailgunApiKey == "" {
		return nil
	}
	return &Mailgun{
		Client: mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey),
		From:   conf.MgEmailFrom,
	}
}

func (mail *Mailgun) SendMail(ctx context.Context, subject, body, recipient string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	m := mail.Client.NewMessage(mail.From, subject, body, recipient)
	_, _, err := mail.Client.Send(ctx, m)
	return err
}
