// Package mail provides the SMTP notifier and the shared-mailbox API client.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	notificationapp "github.com/opsdesk/backend/internal/application/notification"
	procurementapp "github.com/opsdesk/backend/internal/application/procurement"
	"github.com/opsdesk/backend/internal/domain/setting"
	infraconfig "github.com/opsdesk/backend/internal/infrastructure/config"
)

// Ensure SMTPMailer satisfies both mailer ports
var (
	_ notificationapp.Mailer      = (*SMTPMailer)(nil)
	_ procurementapp.VendorMailer = (*SMTPMailer)(nil)
)

// SMTPMailer sends notification mail through an SMTP relay using gomail.
// The from address prefers the notify_from_address setting so operators can
// reroute mail without a restart.
type SMTPMailer struct {
	cfg         *infraconfig.SMTPConfig
	dialer      *gomail.Dialer
	settingRepo setting.Repository
	logger      *zap.Logger
}

// NewSMTPMailer creates an SMTP mailer from configuration
func NewSMTPMailer(cfg *infraconfig.SMTPConfig, settingRepo setting.Repository, logger *zap.Logger) (*SMTPMailer, error) {
	if cfg == nil {
		return nil, errors.New("smtp configuration is required")
	}
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SMTPMailer{
		cfg:         cfg,
		dialer:      gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		settingRepo: settingRepo,
		logger:      logger,
	}, nil
}

// Send delivers a notification with an HTML body and a plain-text alternative
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress(ctx), m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Debug("mail sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// SendPurchaseOrder emails a finalized order PDF to the vendor
func (m *SMTPMailer) SendPurchaseOrder(ctx context.Context, to, vendorName, poNumber string, document []byte) error {
	subject := fmt.Sprintf("Purchase Order %s", poNumber)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>Attached is purchase order <strong>%s</strong>.</p>
			<p>Please confirm receipt and reply to this email with any questions about the order.</p>
		</body>
		</html>
	`, html.EscapeString(vendorName), poNumber)

	plainBody := fmt.Sprintf(`Hello %s,

Attached is purchase order %s.

Please confirm receipt and reply to this email with any questions about the order.
`, vendorName, poNumber)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress(ctx), m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)
	msg.Attach(fmt.Sprintf("PO-%s.pdf", poNumber),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(document)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send purchase order email: %w", err)
	}

	m.logger.Info("purchase order mailed",
		zap.String("to", to),
		zap.String("po_number", poNumber),
		zap.Int("pdf_bytes", len(document)))
	return nil
}

// fromAddress resolves the sender, preferring the runtime setting over config
func (m *SMTPMailer) fromAddress(ctx context.Context) string {
	addr := m.cfg.FromAddress
	if m.settingRepo == nil {
		return addr
	}
	if v, err := m.settingRepo.GetValue(ctx, setting.KeyNotifyFromAddress, addr); err == nil && v != "" {
		return v
	}
	return addr
}
