// Package email defines the outbound email boundary.
//
// Delivery is an external collaborator: this package only specifies the
// interface the identity use cases depend on, plus a log-backed
// implementation for environments without a configured provider.
package email

import (
	"context"
	"fmt"
	"log/slog"
)

// Sender delivers a single email message.
type Sender interface {
	// Send delivers a message to a single recipient. The body is plain text.
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender is a Sender that writes messages to the application log instead
// of delivering them. Used in development and as the default wiring when no
// provider is configured. The body is logged, so it must never contain
// secrets beyond short-lived one-time codes.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender backed by the given logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("email message",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}

// VerificationCodeBody renders the plain-text body for a password reset
// verification code message.
func VerificationCodeBody(firstName, lastName, code string) string {
	return fmt.Sprintf(
		"Hello %s %s,\n\nYour verification code is %s. It expires in 5 minutes.\n\n"+
			"If you did not request a password reset, you can ignore this message.\n",
		firstName, lastName, code,
	)
}
