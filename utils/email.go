package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/tda-club/club-website-backend/config"
)

// smtpTimeout bounds the whole SMTP exchange.
var smtpTimeout = 10 * time.Second

// Mailer sends transactional mail over SMTP with STARTTLS.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromName  string
	fromEmail string

	frontendURL string
}

func NewMailer(cfg *config.Config) *Mailer {
	fromEmail := cfg.SMTPFromEmail
	if fromEmail == "" {
		fromEmail = cfg.SMTPUsername
	}
	return &Mailer{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromName:    cfg.SMTPFromName,
		fromEmail:   fromEmail,
		frontendURL: cfg.FrontendURL,
	}
}

// SendResetLink mails a password reset link containing the one-time token.
func (m *Mailer) SendResetLink(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimSuffix(m.frontendURL, "/"), token)
	subject := "Reset your admin password"
	body := fmt.Sprintf(
		"Hello,\r\n\r\nA password reset was requested for your account.\r\n"+
			"Open the link below within 15 minutes to choose a new password:\r\n\r\n%s\r\n\r\n"+
			"If you did not request this, you can ignore this email.\r\n",
		link,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.host == "" || m.username == "" || m.password == "" {
		log.Printf("⚠️ SMTP not configured, skipping mail to %s (%s)", to, subject)
		return nil
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	// Dial plain first, then upgrade. Port 465-style implicit TLS is not
	// supported by the providers we deploy against.
	conn, err := net.DialTimeout("tcp", addr, smtpTimeout)
	if err != nil {
		return fmt.Errorf("dial smtp server: %w", err)
	}
	_ = conn.SetDeadline(time.Now().Add(smtpTimeout))

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: m.host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.fromEmail); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}
