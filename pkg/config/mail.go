package config

import (
	"os"
	"strconv"
	"strings"
)

// Mail configuration defaults.
const (
	DefaultSMTPServer = "smtp.gmail.com"
	DefaultSMTPPort   = 587
)

// MailConfig holds SMTP credentials and endpoints for relaying submissions.
// A nil *MailConfig means the server is unconfigured and must fall back to
// logging submissions to a file.
type MailConfig struct {
	Server         string
	Port           int
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
}

// MailFromEnv builds a MailConfig from the given environment lookup
// function (usually os.Getenv). It returns nil when any of SENDER_EMAIL,
// SENDER_PASSWORD, or RECIPIENT_EMAIL is unset or empty, or when SMTP_PORT
// is set to a non-numeric value. SMTP_SERVER and SMTP_PORT have defaults.
//
// The second return value lists the missing required variables, for
// startup diagnostics; it is nil when the config is complete.
func MailFromEnv(getenv func(string) string) (*MailConfig, []string) {
	cfg := &MailConfig{
		Server:         DefaultSMTPServer,
		Port:           DefaultSMTPPort,
		SenderEmail:    strings.TrimSpace(getenv("SENDER_EMAIL")),
		SenderPassword: getenv("SENDER_PASSWORD"),
		RecipientEmail: strings.TrimSpace(getenv("RECIPIENT_EMAIL")),
	}

	if server := strings.TrimSpace(getenv("SMTP_SERVER")); server != "" {
		cfg.Server = server
	}

	var missing []string
	if cfg.SenderEmail == "" {
		missing = append(missing, "SENDER_EMAIL")
	}
	if cfg.SenderPassword == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if cfg.RecipientEmail == "" {
		missing = append(missing, "RECIPIENT_EMAIL")
	}

	if portStr := strings.TrimSpace(getenv("SMTP_PORT")); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			// A bad port means mail cannot be sent; treat as unconfigured
			// rather than failing startup.
			missing = append(missing, "SMTP_PORT")
		} else {
			cfg.Port = port
		}
	}

	if len(missing) > 0 {
		return nil, missing
	}
	return cfg, nil
}

// MailFromOSEnv is MailFromEnv bound to os.Getenv.
func MailFromOSEnv() (*MailConfig, []string) {
	return MailFromEnv(os.Getenv)
}
