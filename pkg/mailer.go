package pkg

import (
	"github.com/spf13/viper"

	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
)

// Mailer delivers a single HTML email. Delivery failures are reported to the
// caller but callers on request paths are expected to log and move on rather
// than surface them to the client.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NewMailer builds the configured mail provider. MAIL_PROVIDER selects
// between "ses" and "resend" (default).
func NewMailer() Mailer {
	switch viper.GetString("MAIL_PROVIDER") {
	case "ses":
		m, err := NewSESMailer()
		if err != nil {
			logger.Get().WithComponent("mailer").Fatal("Failed to configure SES mailer", err)
		}
		return m
	default:
		return NewResendMailer()
	}
}
