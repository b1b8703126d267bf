package mailer

import (
	"context"
	"fmt"
	"time"

	"booking-service/internal/config"
	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// SMTPMailer sends one message per call over a fresh SMTP session.
type SMTPMailer struct {
	client *mail.Client
}

func NewSMTPMailer(cfg config.Mail) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	log.WithFields(log.Fields{
		"host": cfg.Host,
		"port": cfg.Port,
	}).Info("SMTP mailer configured")

	return &SMTPMailer{client: client}, nil
}

func buildMessage(msg domain.EmailMessage) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (s *SMTPMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	m, err := buildMessage(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// LogMailer only logs messages. Used when SMTP credentials are not set.
type LogMailer struct {
	logger log.FieldLogger
}

func NewLogMailer(logger log.FieldLogger) *LogMailer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogMailer{logger: logger}
}

func (l *LogMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	l.logger.WithFields(log.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Email delivery disabled, message not sent")
	return nil
}
