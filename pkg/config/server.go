package config

// Server configuration defaults.
const (
	DefaultPort          = 8000
	DefaultStaticDir     = "."
	DefaultSubmissionLog = "form_submissions.log"
	DefaultReadTimeout   = 30 // seconds
	DefaultWriteTimeout  = 30 // seconds
	DefaultSMTPTimeout   = 10 // seconds
)

// LoggingConfig controls operational (diagnostic) logging.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is the output format: text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// File is an optional path to write diagnostics to instead of stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// StaticDir is the directory static files are served from.
	StaticDir string `json:"staticDir,omitempty" yaml:"staticDir,omitempty"`

	// SubmissionLog is the path submissions are appended to when mail is
	// not configured.
	SubmissionLog string `json:"submissionLog,omitempty" yaml:"submissionLog,omitempty"`

	// ReadTimeout is the HTTP read timeout in seconds.
	ReadTimeout int `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout is the HTTP write timeout in seconds.
	WriteTimeout int `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// SMTPTimeout is the SMTP dial timeout in seconds.
	SMTPTimeout int `json:"smtpTimeout,omitempty" yaml:"smtpTimeout,omitempty"`

	// Logging configures operational logging.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DefaultServerConfig returns a ServerConfig populated with defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:          DefaultPort,
		StaticDir:     DefaultStaticDir,
		SubmissionLog: DefaultSubmissionLog,
		ReadTimeout:   DefaultReadTimeout,
		WriteTimeout:  DefaultWriteTimeout,
		SMTPTimeout:   DefaultSMTPTimeout,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyDefaults fills zero-valued fields with defaults.
func (c *ServerConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.SubmissionLog == "" {
		c.SubmissionLog = DefaultSubmissionLog
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.SMTPTimeout == 0 {
		c.SMTPTimeout = DefaultSMTPTimeout
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}
