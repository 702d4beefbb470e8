package pkg

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNewSESMailer(t *testing.T) {
	viper.Set("AWS_REGION", "ap-southeast-1")
	viper.Set("EMAIL_FROM", "noreply@college.edu")
	defer func() {
		viper.Set("AWS_REGION", "")
		viper.Set("EMAIL_FROM", "")
	}()

	m, err := NewSESMailer()
	if err != nil {
		t.Fatalf("NewSESMailer: %v", err)
	}
	if m == nil || m.client == nil {
		t.Fatal("mailer not constructed")
	}
	if m.from != "noreply@college.edu" {
		t.Fatalf("from = %q", m.from)
	}
}

func TestNewMailerDefaultsToResend(t *testing.T) {
	viper.Set("MAIL_PROVIDER", "")
	if _, ok := NewMailer().(*ResendMailer); !ok {
		t.Fatal("default provider must be Resend")
	}
}
