package pkg

import (
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/spf13/viper"
)

// ResendMailer sends email through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer() *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(viper.GetString("RESEND_API_KEY")),
		from:   viper.GetString("EMAIL_FROM"),
	}
}

func (m *ResendMailer) Send(to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	if _, err := m.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send to %s: %w", to, err)
	}
	return nil
}
