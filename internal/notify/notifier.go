// Package notify delivers price-drop alerts. The transport is an injected
// dependency: production wires SMTP, tests wire a recording stub, and dev
// environments without SMTP credentials fall back to the log notifier.
package notify

import (
	"context"

	"go.uber.org/zap"

	"gopkg.in/gomail.v2"

	"pricetrack/internal/config"
)

type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPNotifier sends HTML mail through a single SMTP account.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(cfg config.NotifierConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return n.dialer.DialAndSend(m)
}

// LogNotifier records deliveries in the log instead of sending mail. Used when
// SMTP is not configured; it reports success, so alerts still flip to notified.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Send(_ context.Context, to, subject, _ string) error {
	if n.Logger != nil {
		n.Logger.Info("notification (log only)",
			zap.String("to", to),
			zap.String("subject", subject),
		)
	}
	return nil
}
