package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Notification event kinds.
const (
	EventNewSubmission       = "achievement.submitted"
	EventAchievementApproved = "achievement.approved"
	EventAchievementRejected = "achievement.rejected"
	EventPasswordReset       = "auth.password_reset"
)

// NotificationEvent carries everything a delivery channel needs. The core
// never waits on delivery; a failed notification is logged and counted but
// never rolls back the state change that triggered it.
type NotificationEvent struct {
	Kind           string    `json:"kind"`
	RecipientID    uint      `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	AchievementID  *uint     `json:"achievement_id,omitempty"`
	ResetToken     string    `json:"reset_token,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}

// Notifier dispatches notification events to an external delivery channel.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}

// LogNotifier is the default sink: it records the event and delivers
// nothing. Useful for development and tests.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier constructs a log-only notification sink.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "log_notifier").Logger()}
}

// Notify records the event at info level.
func (n *LogNotifier) Notify(_ context.Context, event NotificationEvent) error {
	n.logger.Info().
		Str("kind", event.Kind).
		Uint("recipient_id", event.RecipientID).
		Str("subject", event.Subject).
		Msg("notification event")
	return nil
}

// NATSNotifier publishes notification events as JSON onto a NATS subject for
// an out-of-process mailer to consume.
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSNotifier constructs a NATS-backed notification sink.
func NewNATSNotifier(conn *nats.Conn, subject string, logger zerolog.Logger) *NATSNotifier {
	if subject == "" {
		subject = "achievements.notifications"
	}
	return &NATSNotifier{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "nats_notifier").Logger(),
	}
}

// Notify publishes the event to the configured subject.
func (n *NATSNotifier) Notify(_ context.Context, event NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := n.conn.Publish(n.subject, payload); err != nil {
		return err
	}
	return nil
}
