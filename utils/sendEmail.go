package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer wraps the SMTP dialer so callers can check configuration before
// attempting a send. An unconfigured mailer is a normal condition: sends
// report failure as a value, never as a panic.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

var mailer *Mailer

// InitializeMailer sets up the mailer using environment variables. When the
// SMTP settings are absent the mailer stays unconfigured and every send is
// reported as failed without any network call.
func InitializeMailer() {
	mailHost := os.Getenv("SMTP_HOST")
	mailPort := os.Getenv("SMTP_PORT")
	mailUser := os.Getenv("SMTP_USER")
	mailPassword := os.Getenv("SMTP_PASSWORD")
	mailFrom := os.Getenv("SMTP_FROM")

	if mailHost == "" || mailFrom == "" {
		mailer = &Mailer{}
		return
	}

	port, err := strconv.Atoi(mailPort)
	if err != nil {
		port = 25
	}

	mailer = &Mailer{
		dialer: gomail.NewDialer(mailHost, port, mailUser, mailPassword),
		from:   mailFrom,
	}
}

// GetMailer returns the initialized mailer
func GetMailer() *Mailer {
	return mailer
}

// IsConfigured reports whether SMTP settings were present at startup.
func (m *Mailer) IsConfigured() bool {
	return m != nil && m.dialer != nil
}

// Send sends a plain-text + HTML email with an optional attachment and
// returns an error if it fails.
func (m *Mailer) Send(to, subject, message, attachmentPath string) error {
	if !m.IsConfigured() {
		return fmt.Errorf("mailer is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", message)
	msg.AddAlternative("text/html", fmt.Sprintf(`
		<html>
		<head>
			<meta charset="utf-8">
			<title>%s</title>
		</head>
		<body>
			<p>%s</p>
		</body>
		</html>`, subject, message))

	if attachmentPath != "" {
		if _, err := os.Stat(attachmentPath); err == nil {
			msg.Attach(attachmentPath)
		}
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
