package dispatch

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/formd/formd/pkg/config"
	"github.com/formd/formd/pkg/form"
	"github.com/formd/formd/pkg/logging"
	"github.com/formd/formd/pkg/notify"
)

// Default timeouts for the SMTP exchange. A hung peer must not be able to
// hold a request open indefinitely.
const (
	defaultSMTPDialTimeout = 10 * time.Second
	smtpSessionTimeout     = 30 * time.Second
)

// Mailer relays submissions by email over SMTP with STARTTLS.
type Mailer struct {
	cfg         *config.MailConfig
	dialTimeout time.Duration
	log         *slog.Logger
}

// NewMailer creates the mail dispatch variant for the given configuration.
func NewMailer(cfg *config.MailConfig, opts ...Option) *Mailer {
	o := options{log: logging.Nop(), smtpTimeout: defaultSMTPDialTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	return &Mailer{cfg: cfg, dialTimeout: o.smtpTimeout, log: o.log}
}

// Mode reports the dispatch variant.
func (m *Mailer) Mode() string { return ModeMail }

// Dispatch composes and sends the notification email. All transport,
// authentication, and protocol errors are returned as values.
func (m *Mailer) Dispatch(ctx context.Context, sub *form.Submission) error {
	msg := notify.Compose(sub, sub.Received)
	body, err := msg.HTML()
	if err != nil {
		return err
	}

	payload := buildMessage(m.cfg.SenderEmail, m.cfg.RecipientEmail, msg.Subject(), body)

	if err := m.send(ctx, payload); err != nil {
		m.log.Error("failed to send email",
			"id", sub.ID,
			"smtp_server", m.cfg.Server,
			"error", err)
		return err
	}

	m.log.Info("email sent", "id", sub.ID, "from", sub.Field(form.FieldEmail))
	return nil
}

// send performs the SMTP exchange: dial, EHLO, STARTTLS, AUTH, MAIL/RCPT/DATA.
func (m *Mailer) send(ctx context.Context, payload []byte) error {
	addr := net.JoinHostPort(m.cfg.Server, strconv.Itoa(m.cfg.Port))

	dialer := &net.Dialer{Timeout: m.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	// Bound the whole session so a stalled peer cannot hold the request.
	if err := conn.SetDeadline(time.Now().Add(smtpSessionTimeout)); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Server)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer func() { _ = client.Close() }()

	tlsConfig := &tls.Config{ServerName: m.cfg.Server, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starttls failed: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.SenderEmail, m.cfg.SenderPassword, m.cfg.Server)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp authentication failed: %w", err)
	}

	if err := client.Mail(m.cfg.SenderEmail); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(m.cfg.RecipientEmail); err != nil {
		return fmt.Errorf("RCPT TO rejected: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message not accepted: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles the RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	return []byte(sb.String())
}
