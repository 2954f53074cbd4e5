package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time version info, injected via SetBuildInfo.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// BuildInfo carries build-time version information from main.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// SetBuildInfo records build-time version information for `formd version`.
func SetBuildInfo(info BuildInfo) {
	if info.Version != "" {
		version = info.Version
	}
	if info.Commit != "" {
		commit = info.Commit
	}
	if info.BuildDate != "" {
		buildDate = info.BuildDate
	}
}

// rootCmd represents the base command. Invoked without a subcommand it
// starts the server; a bare positional argument is the port.
var rootCmd = &cobra.Command{
	Use:   "formd [port]",
	Short: "formd serves a static site and relays contact-form submissions",
	Long: `formd is a small web server that serves static files and accepts a
contact-form submission at POST /submit-form. Valid submissions are relayed
by email over SMTP; when mail credentials are not configured they are
appended to a local log file instead.

Mail credentials come from the environment: SENDER_EMAIL, SENDER_PASSWORD,
RECIPIENT_EMAIL (required), SMTP_SERVER and SMTP_PORT (optional, with
defaults for Gmail).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals, args)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	registerServeFlags(rootCmd)
	initServeCmd()
	initConfigCmd()
	initVersionCmd()
}
