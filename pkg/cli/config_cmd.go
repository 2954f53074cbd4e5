package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/formd/formd/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	Long: `Show the configuration the server would start with, after merging the
config file (if any) and flags. The SMTP password is never printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfig(cmd)
	},
}

func initConfigCmd() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command) error {
	cfg, err := effectiveConfig(&serveFlagVals, nil, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	mailCfg, missing := config.MailFromOSEnv()
	if mailCfg == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "mail: unconfigured (missing %v)\n", missing)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "mail:\n  server: %s\n  port: %d\n  sender: %s\n  recipient: %s\n  password: [redacted]\n",
		mailCfg.Server, mailCfg.Port, mailCfg.SenderEmail, mailCfg.RecipientEmail)
	return nil
}
