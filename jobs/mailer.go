package jobs

import (
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// Mailer delivers plain-text mail through the configured SMTP relay.
type Mailer struct {
	host string
	port int
	from string
}

// NewMailer builds Mailer instance.
func NewMailer(host string, port int, from string) *Mailer {
	return &Mailer{host: host, port: port, from: from}
}

// Send delivers one message. The relay is assumed to be trusted
// (Mailpit in development, an authenticated relay behind it in production).
func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return errors.New("mailer not configured")
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("mailer: empty recipient")
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", m.from, to, subject, body)
	return smtp.SendMail(addr, nil, m.from, []string{to}, []byte(msg))
}
