package email_adapter

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/saurav73/GrihaMate/internal/contextkeys"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// SMTPMailer - реализация MailerPort поверх SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host cannot be empty")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp sender address cannot be empty")
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	mailerLogger := logger.WithFields(port.Fields{
		"component": "SMTPMailer",
		"to":        to,
	})

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	// gomail не умеет в context, поэтому отправляем в горутине
	// и соблюдаем отмену сами
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("email send cancelled: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			mailerLogger.Error("Failed to send email", err, nil)
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
	}

	mailerLogger.Debug("Email sent", port.Fields{"subject": subject})
	return nil
}
