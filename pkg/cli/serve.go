package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/formd/formd/pkg/config"
	"github.com/formd/formd/pkg/dispatch"
	"github.com/formd/formd/pkg/engine"
	"github.com/formd/formd/pkg/logging"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	port          int
	staticDir     string
	configFile    string
	submissionLog string
	logLevel      string
	logFormat     string
	logFile       string
	readTimeout   int
	writeTimeout  int
	smtpTimeout   int
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve [port]",
	Short: "Start the server (default command)",
	Long: `Start the web server. Serves static files from the static directory and
accepts contact-form submissions at POST /submit-form.

When SENDER_EMAIL, SENDER_PASSWORD, and RECIPIENT_EMAIL are set, valid
submissions are relayed by email over SMTP. Otherwise the server runs in
unconfigured mode and appends submissions to the submission log file.`,
	Example: `  # Start with defaults on port 8000
  formd serve

  # Start on a custom port (positional or flag form)
  formd serve 3000
  formd serve --port 3000

  # Serve a specific site directory with a config file
  formd serve --static-dir ./site --config formd.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals, args)
	},
}

// registerServeFlags binds the serve flags as persistent flags on the root
// command, so `formd --port 3000` and `formd serve --port 3000` behave the
// same.
func registerServeFlags(root *cobra.Command) {
	f := &serveFlagVals

	root.PersistentFlags().IntVarP(&f.port, "port", "p", 0, fmt.Sprintf("HTTP server port (default %d)", config.DefaultPort))
	root.PersistentFlags().StringVar(&f.staticDir, "static-dir", "", "Directory to serve static files from (default \".\")")
	root.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "Path to a YAML or JSON config file")
	root.PersistentFlags().StringVar(&f.submissionLog, "submission-log", "", fmt.Sprintf("Fallback submission log path (default %q)", config.DefaultSubmissionLog))
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (default \"info\")")
	root.PersistentFlags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json (default \"text\")")
	root.PersistentFlags().StringVar(&f.logFile, "log-file", "", "Write diagnostics to a file instead of stderr")
	root.PersistentFlags().IntVar(&f.readTimeout, "read-timeout", 0, fmt.Sprintf("HTTP read timeout in seconds (default %d)", config.DefaultReadTimeout))
	root.PersistentFlags().IntVar(&f.writeTimeout, "write-timeout", 0, fmt.Sprintf("HTTP write timeout in seconds (default %d)", config.DefaultWriteTimeout))
	root.PersistentFlags().IntVar(&f.smtpTimeout, "smtp-timeout", 0, fmt.Sprintf("SMTP dial timeout in seconds (default %d)", config.DefaultSMTPTimeout))
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)
}

// parsePort parses a positional port argument. A non-numeric or
// out-of-range value is reported but never fatal; the caller falls back to
// the default, matching the historical CLI contract.
func parsePort(arg string) (int, bool) {
	port, err := strconv.Atoi(arg)
	if err != nil || port <= 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// effectiveConfig builds the server configuration: config file (if given),
// then flag overrides, then a positional port argument.
func effectiveConfig(f *serveFlags, args []string, warn io.Writer) (*config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	if f.configFile != "" {
		loaded, err := config.LoadServerConfig(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Explicit flags win over file values.
	if f.port > 0 {
		cfg.Port = f.port
	}
	if f.staticDir != "" {
		cfg.StaticDir = f.staticDir
	}
	if f.submissionLog != "" {
		cfg.SubmissionLog = f.submissionLog
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	if f.logFile != "" {
		cfg.Logging.File = f.logFile
	}
	if f.readTimeout > 0 {
		cfg.ReadTimeout = f.readTimeout
	}
	if f.writeTimeout > 0 {
		cfg.WriteTimeout = f.writeTimeout
	}
	if f.smtpTimeout > 0 {
		cfg.SMTPTimeout = f.smtpTimeout
	}

	// A bare positional argument is the port. Invalid values warn and
	// keep the configured default rather than failing startup.
	if len(args) == 1 {
		if port, ok := parsePort(args[0]); ok {
			cfg.Port = port
		} else {
			fmt.Fprintf(warn, "Invalid port %q. Using port %d.\n", args[0], cfg.Port)
		}
	}

	return cfg, nil
}

func runServe(f *serveFlags, args []string) error {
	cfg, err := effectiveConfig(f, args, os.Stderr)
	if err != nil {
		return err
	}

	logOutput := io.Writer(os.Stderr)
	if cfg.Logging.File != "" {
		logFile, err := logging.Open(cfg.Logging.File)
		if err != nil {
			return err
		}
		defer func() { _ = logFile.Close() }()
		logOutput = logFile
	}
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
		Output: logOutput,
	})

	// Mail credentials are read once at startup; the result is immutable
	// for the process lifetime.
	mailCfg, missing := config.MailFromOSEnv()

	dispatcher := dispatch.ForConfig(mailCfg, cfg.SubmissionLog,
		dispatch.WithLogger(log),
		dispatch.WithSMTPTimeout(time.Duration(cfg.SMTPTimeout)*time.Second))

	srv := engine.NewServer(cfg, dispatcher, engine.WithLogger(log))
	if err := srv.Start(); err != nil {
		if errors.Is(err, engine.ErrPortInUse) {
			return fmt.Errorf("port %d is already in use. Try: formd serve --port %d",
				cfg.Port, cfg.Port+1)
		}
		return err
	}

	printBanner(os.Stdout, srv.Port(), dispatcher.Mode(), cfg.SubmissionLog)
	if mailCfg == nil {
		printMailConfigHelp(os.Stdout, missing, cfg.SubmissionLog)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Server stopped")
	return nil
}

// printBanner prints the startup summary.
func printBanner(w io.Writer, port int, mode, submissionLog string) {
	fmt.Fprintf(w, "formd server running at:\n")
	fmt.Fprintf(w, "   http://localhost:%d\n", port)
	fmt.Fprintf(w, "   http://127.0.0.1:%d\n\n", port)
	fmt.Fprintf(w, "Form endpoint: http://localhost:%d%s\n", port, engine.SubmitPath)
	if mode == dispatch.ModeMail {
		fmt.Fprintf(w, "Email relay: enabled\n")
	} else {
		fmt.Fprintf(w, "Email relay: disabled, submissions go to %s\n", submissionLog)
	}
	fmt.Fprintln(w, "\nPress Ctrl+C to stop")
}

// printMailConfigHelp explains how to enable email relaying. Printed at
// startup whenever the server runs in unconfigured mode.
func printMailConfigHelp(w io.Writer, missing []string, submissionLog string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EMAIL CONFIGURATION")
	fmt.Fprintln(w, "To enable email relaying, set these environment variables:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Required:")
	fmt.Fprintln(w, "  SENDER_EMAIL=your-email@gmail.com")
	fmt.Fprintln(w, "  SENDER_PASSWORD=your-app-password")
	fmt.Fprintln(w, "  RECIPIENT_EMAIL=where-submissions-go@example.com")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Optional (with defaults):")
	fmt.Fprintf(w, "  SMTP_SERVER=%s\n", config.DefaultSMTPServer)
	fmt.Fprintf(w, "  SMTP_PORT=%d\n", config.DefaultSMTPPort)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "For Gmail, use an App Password instead of the account password.")
	if len(missing) > 0 {
		fmt.Fprintf(w, "\nCurrently missing: %v\n", missing)
	}
	fmt.Fprintf(w, "Until configured, submissions are logged to %s\n", submissionLog)
}
