// internal/mailer/smtp.go
package mailer

import (
	"bytes"
	"fmt"
	"net"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPTransport sends mail through a plain SMTP relay (STARTTLS).
type SMTPTransport struct {
	Host     string
	Port     string
	Username string
	Password string
}

func NewSMTPTransport(host, port, username, password string) *SMTPTransport {
	return &SMTPTransport{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
	}
}

// Send implements Transport.
func (t *SMTPTransport) Send(subject, body, fromAddress string, to []string) error {
	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", fromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth sasl.Client
	if t.Username != "" {
		auth = sasl.NewPlainClient("", t.Username, t.Password)
	}

	addr := net.JoinHostPort(t.Host, t.Port)
	if err := smtp.SendMail(addr, auth, fromAddress, to, &msg); err != nil {
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}
	return nil
}

var _ Transport = (*SMTPTransport)(nil)
