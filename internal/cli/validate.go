package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkcmr/evreg/internal/scenario"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario>",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d callbacks, %d registrations, %d emissions\n",
				args[0], len(sc.Callbacks), len(sc.Registrations), len(sc.Emit))
			return nil
		},
	}
}
