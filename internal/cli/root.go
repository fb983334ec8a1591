// Package cli implements the evreg command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/nkcmr/evreg/internal/config"
)

type options struct {
	cfg config.Config
}

// NewRootCmd builds the evreg command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "evreg",
		Short:         "Event registry scenario runner",
		Long:          "evreg registers named callbacks under events from a scenario file and emits those events in order.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Flags win over the environment.
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	root.AddCommand(newRunCmd(opts), newValidateCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
