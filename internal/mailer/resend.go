// internal/mailer/resend.go
package mailer

import (
	"fmt"

	"github.com/resend/resend-go/v3"
)

// ResendTransport sends mail through the Resend API.
type ResendTransport struct {
	client *resend.Client
}

func NewResendTransport(apiKey string) *ResendTransport {
	return &ResendTransport{client: resend.NewClient(apiKey)}
}

// Send implements Transport.
func (t *ResendTransport) Send(subject, body, fromAddress string, to []string) error {
	req := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      to,
		Subject: subject,
		Text:    body,
	}

	if _, err := t.client.Emails.Send(req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

var _ Transport = (*ResendTransport)(nil)
