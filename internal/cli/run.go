package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nkcmr/evreg"
	"github.com/nkcmr/evreg/internal/logging"
	"github.com/nkcmr/evreg/internal/scenario"
	"github.com/nkcmr/evreg/internal/telemetry"
	"github.com/nkcmr/evreg/tracing"
)

// ErrEmissionFailed is returned by run when at least one emission failed.
var ErrEmissionFailed = errors.New("one or more emissions failed")

var (
	eventStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func newRunCmd(opts *options) *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a scenario file against a fresh registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("fail-fast") {
				cfg.FailFast = failFast
			}

			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			tp, shutdown, err := telemetry.Setup(ctx, "evreg", cfg.OTelEndpoint)
			if err != nil {
				return fmt.Errorf("setup tracing: %w", err)
			}
			defer func() { _ = shutdown(ctx) }()

			logger := logging.New(cmd.ErrOrStderr(), cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
			reg := sc.Build(
				evreg.WithLogger(logger),
				evreg.WithFailurePolicy(cfg.FailurePolicy()),
			)
			reg.Use(tracing.Middleware[string, *scenario.Emission](tracing.WithTracerProvider(tp)))

			logger.Debug("running scenario",
				"file", args[0],
				"events", len(reg.Events()),
				"emissions", len(sc.Emit),
				"policy", cfg.FailurePolicy().String(),
			)

			ems := sc.RunWith(ctx, reg)
			render(cmd.OutOrStdout(), ems)
			if scenario.Failed(ems) {
				return ErrEmissionFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop an emission at the first failing callback")
	return cmd
}

func render(w io.Writer, ems []scenario.Emission) {
	for _, em := range ems {
		line := eventStyle.Render(em.Event) + " "
		if len(em.Invoked) == 0 {
			line += dimStyle.Render("(no callbacks)")
		} else {
			line += strings.Join(em.Invoked, " → ")
		}
		if em.Err == nil {
			line += " " + okStyle.Render("ok")
		}
		fmt.Fprintln(w, line)

		if em.Err != nil {
			for _, msg := range strings.Split(em.Err.Error(), "\n") {
				fmt.Fprintln(w, "  "+errStyle.Render(msg))
			}
		}
	}
}
