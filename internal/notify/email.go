package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/segyhp/loan-ledger/internal/config"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// EmailSender delivers messages over SMTP
type EmailSender struct {
	cfg  config.MailConfig
	log  logrus.FieldLogger
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewEmailSender creates a sender for the configured SMTP server
func NewEmailSender(cfg config.MailConfig, log logrus.FieldLogger) *EmailSender {
	return &EmailSender{
		cfg: cfg,
		log: log,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (s *EmailSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + strconv.Itoa(s.cfg.SMTPPort)
	if err := s.send(e, addr, auth); err != nil {
		s.log.WithError(err).WithField("to", msg.To).Error("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email sent")
	return nil
}
