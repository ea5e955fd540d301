package mail

import (
	"gopkg.in/gomail.v2"

	"github.com/velourluxe/storefront/config"
)

// Mailer sends plain-text operator mail.
type Mailer interface {
	Send(to, subject, body string) error
}

type gomailSender struct {
	cfg config.SmtpConfig
}

func NewSender(cfg config.SmtpConfig) Mailer {
	return &gomailSender{cfg: cfg}
}

func (s *gomailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
