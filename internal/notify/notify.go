// Package notify renders and sends the confirmation and admin emails that
// follow every accepted submission, then records which sends succeeded.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"leadcapture/internal/domain"
	"leadcapture/internal/metrics"
)

// Kind identifies the submission type a notification belongs to.
type Kind string

const (
	KindContact      Kind = "contact"
	KindConsultation Kind = "consultation"
	KindService      Kind = "service"
)

// Recipient identifies who a notification is addressed to.
type Recipient string

const (
	RecipientUser  Recipient = "user"
	RecipientAdmin Recipient = "admin"
)

// Detail is one labelled line in a rendered email.
type Detail struct {
	Label string
	Value string
}

// Submission is the render-ready view of a persisted record.
type Submission struct {
	Kind        Kind
	ID          string
	Name        string
	Email       string
	Phone       string
	Company     string
	Summary     string
	Message     string
	Details     []Detail
	Priority    domain.Priority
	Score       string
	IPAddress   string
	SubmittedAt time.Time
}

// Message is a fully rendered email ready for a Mailer.
type Message struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// StatusWriter persists the delivery outcome of a notification round.
type StatusWriter interface {
	MarkDelivered(ctx context.Context, id string, d domain.Delivery) error
}

// Result reports which of the two sends succeeded.
type Result struct {
	UserSent  bool
	AdminSent bool
	At        time.Time
}

// Delivery converts r into the flags a StatusWriter persists.
func (r Result) Delivery() domain.Delivery {
	return domain.Delivery{UserSent: r.UserSent, AdminSent: r.AdminSent, At: r.At}
}

// Options configures a Notifier.
type Options struct {
	AdminEmail string
	AdminName  string
	Timeout    time.Duration
	// Now stamps email_sent_at and admin_notified_at. Defaults to time.Now in UTC.
	Now func() time.Time
}

// Notifier sends the user confirmation and the admin alert for a submission.
type Notifier struct {
	mailer   Mailer
	registry Registry
	opts     Options
	log      *logrus.Entry
	now      func() time.Time
}

const defaultTimeout = 10 * time.Second

// New creates a Notifier. A zero Timeout defaults to 10 seconds.
func New(mailer Mailer, registry Registry, opts Options, log logrus.FieldLogger) *Notifier {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Notifier{
		mailer:   mailer,
		registry: registry,
		opts:     opts,
		log:      log.WithField("component", "notify"),
		now:      opts.Now,
	}
}

// Notify runs both sends concurrently, each under its own timeout, and then
// writes the successful ones back through w. Failures are logged and reported
// in the Result; they are never returned. Cancelling ctx does not abort the
// sends or the writeback, only the per-send timeout bounds them.
func (n *Notifier) Notify(ctx context.Context, sub Submission, w StatusWriter) Result {
	ctx = context.WithoutCancel(ctx)
	var (
		res Result
		g   errgroup.Group
	)
	g.Go(func() error {
		res.UserSent = n.send(ctx, sub, RecipientUser, Message{
			To:     sub.Email,
			ToName: sub.Name,
		})
		return nil
	})
	g.Go(func() error {
		res.AdminSent = n.send(ctx, sub, RecipientAdmin, Message{
			To:      n.opts.AdminEmail,
			ToName:  n.opts.AdminName,
			ReplyTo: sub.Email,
		})
		return nil
	})
	_ = g.Wait()
	res.At = n.now()

	if w == nil || (!res.UserSent && !res.AdminSent) {
		return res
	}
	if err := w.MarkDelivered(ctx, sub.ID, res.Delivery()); err != nil {
		n.log.WithError(err).WithFields(logrus.Fields{
			"kind": sub.Kind,
			"id":   sub.ID,
		}).Error("failed to record email delivery")
	}
	return res
}

func (n *Notifier) send(ctx context.Context, sub Submission, to Recipient, msg Message) bool {
	log := n.log.WithFields(logrus.Fields{
		"kind":      sub.Kind,
		"id":        sub.ID,
		"recipient": to,
	})

	content, err := n.registry.Lookup(sub.Kind, to)(sub)
	if err != nil {
		log.WithError(err).Error("failed to render email")
		metrics.RecordEmail(string(sub.Kind), string(to), false)
		return false
	}
	msg.Subject = content.Subject
	msg.Text = content.Text
	msg.HTML = content.HTML

	sctx, cancel := context.WithTimeout(ctx, n.opts.Timeout)
	defer cancel()

	err = n.mailer.Send(sctx, msg)
	metrics.RecordEmail(string(sub.Kind), string(to), err == nil)
	switch {
	case err == nil:
		log.Info("email sent")
		return true
	case errors.Is(err, ErrDisabled):
		log.Debug("email delivery disabled")
	case errors.Is(err, context.DeadlineExceeded):
		log.WithField("timeout", n.opts.Timeout.String()).Warn("email send timed out")
	default:
		log.WithError(err).Warn("failed to send email")
	}
	return false
}
