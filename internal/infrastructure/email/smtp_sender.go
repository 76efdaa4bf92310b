// Package email implementa el puerto EmailSender sobre SMTP.
package email

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/albaranes-api/internal/application/ports"
	"github.com/jhoicas/albaranes-api/pkg/config"
)

var _ ports.EmailSender = (*SMTPSender)(nil)

// SMTPSender envía correos transaccionales vía SMTP (gomail).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender construye el sender con la configuración SMTP de la app.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo de texto plano.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	return nil
}

var _ ports.EmailSender = (*NopSender)(nil)

// NopSender descarta los correos. Se cablea en APP_ENV=test para no enviar
// emails reales durante las pruebas.
type NopSender struct{}

// NewNopSender construye el sender no-op.
func NewNopSender() *NopSender { return &NopSender{} }

// Send no hace nada.
func (s *NopSender) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
