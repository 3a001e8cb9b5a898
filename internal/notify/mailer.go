package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"leadcapture/internal/config"
)

// ErrDisabled is returned by DisabledMailer for every send.
var ErrDisabled = errors.New("email delivery is disabled")

// SMTPMailer sends messages through an SMTP relay.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewSMTPMailer creates a mailer from the email configuration. Encryption
// "ssl" uses implicit TLS; anything else upgrades with STARTTLS when offered.
func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	d.SSL = cfg.Encryption == "ssl"
	return &SMTPMailer{dialer: d, from: cfg.FromEmail, fromName: cfg.FromName}
}

// Send delivers msg, giving up when ctx is done. The SMTP exchange itself is
// not interruptible and finishes in the background.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	gm := m.build(msg)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(gm)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *SMTPMailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.fromName)
	gm.SetAddressHeader("To", msg.To, msg.ToName)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}
	return gm
}

// DisabledMailer logs every message instead of sending it.
type DisabledMailer struct {
	log *logrus.Entry
}

func NewDisabledMailer(log logrus.FieldLogger) *DisabledMailer {
	return &DisabledMailer{log: log.WithField("component", "notify")}
}

func (m *DisabledMailer) Send(_ context.Context, msg Message) error {
	m.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email disabled, message not sent")
	return ErrDisabled
}

// NewMailer picks the SMTP mailer when email is enabled.
func NewMailer(cfg config.EmailConfig, log logrus.FieldLogger) Mailer {
	if !cfg.Enabled {
		return NewDisabledMailer(log)
	}
	return NewSMTPMailer(cfg)
}
