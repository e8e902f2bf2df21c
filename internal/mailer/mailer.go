// internal/mailer/mailer.go
package mailer

import (
	"github.com/unclebandit/mailflow-backend/internal/config"
)

// Transport delivers one outbound email. An error from Send is a transport
// error: the dispatch loop records it per recipient and keeps going.
type Transport interface {
	Send(subject, body, fromAddress string, to []string) error
}

// FromConfig picks the transport implementation named by MAILER_DRIVER.
func FromConfig(cfg *config.Config) Transport {
	if cfg.MailerDriver == "resend" {
		return NewResendTransport(cfg.ResendAPIKey)
	}
	return NewSMTPTransport(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
}
