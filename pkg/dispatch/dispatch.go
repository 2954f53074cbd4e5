package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/formd/formd/pkg/config"
	"github.com/formd/formd/pkg/form"
)

// Dispatch modes.
const (
	ModeMail = "mail"
	ModeLog  = "log"
)

// Dispatcher delivers one validated submission. Implementations must be
// safe for concurrent use.
type Dispatcher interface {
	// Dispatch delivers the submission or returns an error describing why
	// delivery failed. It must not panic.
	Dispatch(ctx context.Context, sub *form.Submission) error

	// Mode reports which variant this dispatcher is (ModeMail or ModeLog).
	Mode() string
}

// Option configures a dispatcher.
type Option func(*options)

type options struct {
	log         *slog.Logger
	smtpTimeout time.Duration
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSMTPTimeout sets the SMTP dial timeout.
func WithSMTPTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.smtpTimeout = d
		}
	}
}

// ForConfig selects the dispatch variant once at startup: the mail variant
// when credentials are configured, otherwise the file-logging fallback.
func ForConfig(mail *config.MailConfig, logPath string, opts ...Option) Dispatcher {
	if mail != nil {
		return NewMailer(mail, opts...)
	}
	return NewFileLogger(logPath, opts...)
}
