package notification

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers a notification email with HTML and plain text bodies.
// The SMTP implementation lives in the infrastructure layer.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, plainBody string) error
}

// LoggingMailer logs messages instead of sending them.
// Used when SMTP is not configured.
type LoggingMailer struct {
	logger *zap.Logger
}

// NewLoggingMailer creates a mailer that only logs
func NewLoggingMailer(logger *zap.Logger) *LoggingMailer {
	return &LoggingMailer{
		logger: logger,
	}
}

// Send logs the message headers
func (m *LoggingMailer) Send(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	m.logger.Info("MAIL",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("html_bytes", len(htmlBody)),
	)
	return nil
}

// Ensure LoggingMailer implements Mailer
var _ Mailer = (*LoggingMailer)(nil)
