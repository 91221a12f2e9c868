// Package mail delivers transactional email over SMTP.  Handlers never
// call it directly: delivery requests travel through the outbox queue
// and the background consumer hands them to a Mailer.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ThomasMorgana/Webservice/internal/config"
)

// Mailer sends HTML mail through a configured SMTP relay.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer from the SMTP settings in the config.
func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// Send delivers a single HTML message to one recipient.
func (m *Mailer) Send(recipient, subject, htmlBody string) error {
	if recipient == "" {
		return fmt.Errorf("no recipient specified")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
