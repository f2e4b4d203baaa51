package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrNotConfigured is returned by senders that cannot deliver mail at all.
var ErrNotConfigured = errors.New("email delivery not configured")

// Message is one rendered email. Kind and RecordID identify what it is about.
type Message struct {
	Kind     Kind
	RecordID string
	To       string
	From     string
	Subject  string
	HTML     string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type mailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridSender struct {
	client   mailClient
	fromName string
	logger   zerolog.Logger
}

func NewSendGridSender(apiKey, fromName string, logger zerolog.Logger) *SendGridSender {
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		logger:   logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	email := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, msg.From),
		msg.Subject,
		mail.NewEmail("", msg.To),
		"",
		msg.HTML,
	)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid responded with status %d: %s", resp.StatusCode, resp.Body)
	}

	s.logger.Info().
		Str("to", msg.To).
		Str("kind", string(msg.Kind)).
		Msg("Email sent")

	return nil
}

// LogSender stands in when no provider key is configured: it records what would
// have been sent and reports the message as undelivered.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("kind", string(msg.Kind)).
		Msg("Email provider not configured, email not sent")
	return ErrNotConfigured
}
