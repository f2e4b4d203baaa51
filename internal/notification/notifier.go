// Package notification renders lead emails and delivers them off the request path.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentshive/training-site/internal/models"
)

type Addresses struct {
	From       string
	Admissions string
	Contact    string
}

// Notifier sends the emails that follow a stored lead. Delivery is best-effort:
// every failure is logged and reported as false, never returned.
type Notifier struct {
	sender    Sender
	renderer  *Renderer
	addresses Addresses
	logger    zerolog.Logger
	now       func() time.Time
}

func NewNotifier(sender Sender, renderer *Renderer, addresses Addresses, logger zerolog.Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		renderer:  renderer,
		addresses: addresses,
		logger:    logger,
		now:       time.Now,
	}
}

// NotifyApplication sends the admissions notification and the applicant
// confirmation. It reports true only when both were delivered.
func (n *Notifier) NotifyApplication(ctx context.Context, app *models.Application) bool {
	admin := n.deliver(ctx, app.ID, KindApplicationNotification, func() (Message, error) {
		html, err := n.renderer.ApplicationNotification(app, n.now())
		return Message{
			To:      n.addresses.Admissions,
			From:    n.addresses.From,
			Subject: fmt.Sprintf("New Course Application - %s - %s", app.Course, app.FullName()),
			HTML:    html,
		}, err
	})

	confirmation := n.deliver(ctx, app.ID, KindApplicationConfirmation, func() (Message, error) {
		html, err := n.renderer.ApplicationConfirmation(app, n.addresses.Admissions)
		return Message{
			To:      app.Email,
			From:    n.addresses.Admissions,
			Subject: fmt.Sprintf("Application Received - %s Course", app.Course),
			HTML:    html,
		}, err
	})

	return admin && confirmation
}

func (n *Notifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) bool {
	return n.deliver(ctx, msg.ID, KindContactNotification, func() (Message, error) {
		html, err := n.renderer.ContactNotification(msg, n.now())
		return Message{
			To:      n.addresses.Contact,
			From:    n.addresses.From,
			Subject: fmt.Sprintf("New Contact Message - %s", msg.FullName()),
			HTML:    html,
		}, err
	})
}

// HandleLeadCreated lets the queue worker drive the notifier. Delivery failures are
// already logged by the notifier and are not redelivered.
func (n *Notifier) HandleLeadCreated(ctx context.Context, event models.LeadCreatedEvent) error {
	switch {
	case event.Application != nil:
		n.NotifyApplication(ctx, event.Application)
	case event.ContactMessage != nil:
		n.NotifyContact(ctx, event.ContactMessage)
	default:
		return fmt.Errorf("event %q carries no lead", event.Type)
	}
	return nil
}

func (n *Notifier) deliver(ctx context.Context, recordID string, kind Kind, build func() (Message, error)) bool {
	msg, err := build()
	if err != nil {
		n.logger.Error().
			Err(err).
			Str("kind", string(kind)).
			Str("record_id", recordID).
			Msg("Failed to render email")
		return false
	}
	msg.Kind = kind
	msg.RecordID = recordID

	if err := n.sender.Send(ctx, msg); err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			n.logger.Error().
				Err(err).
				Str("kind", string(kind)).
				Str("record_id", recordID).
				Str("to", msg.To).
				Msg("Failed to deliver email")
		}
		return false
	}
	return true
}
