package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// EmailSender delivers one rendered email. Implementations are expected to
// be best-effort; callers decide what a failure means.
type EmailSender interface {
	Send(to, subject, html string) error
}

// SMTPMailer sends HTML email through a plain SMTP relay.
type SMTPMailer struct {
	from     string
	password string
	host     string
	port     string
	sender   string
}

// NewSMTPMailerFromEnv builds the mailer from EMAIL_FROM, EMAIL_PASSWORD,
// SMTP_HOST, SMTP_PORT and EMAIL_SENDER_NAME.
func NewSMTPMailerFromEnv() *SMTPMailer {
	sender := os.Getenv("EMAIL_SENDER_NAME")
	if sender == "" {
		sender = "TransferSol"
	}
	return &SMTPMailer{
		from:     os.Getenv("EMAIL_FROM"),
		password: os.Getenv("EMAIL_PASSWORD"),
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		sender:   sender,
	}
}

func (m *SMTPMailer) Send(to, subject, html string) error {
	if m.from == "" || m.password == "" || m.host == "" || m.port == "" {
		return fmt.Errorf("email configuration not set")
	}

	recipients := []string{to}

	// Headers
	headers := []string{
		fmt.Sprintf("From: %s <%s>", m.sender, m.from),
		"To: " + strings.Join(recipients, ","),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"X-Mailer: TransferSol-Mailer",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + html

	auth := smtp.PlainAuth("", m.from, m.password, m.host)

	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, recipients, []byte(message)); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}

	log.Printf("Successfully sent email to %s", to)
	return nil
}
