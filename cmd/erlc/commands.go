package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/provide-io/erlc/internal/config"
	"github.com/provide-io/erlc/internal/session"
	"github.com/provide-io/erlc/internal/web"
	"github.com/provide-io/erlc/pkg"
	"github.com/provide-io/erlc/pkg/calculator"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var level string
	var descriptions bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the expressions for a level",
		Long: `Show the error_reporting expression, the ini-style expression and the raw
value for a level typed into the level field. Without --level the version's
maximum level is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := pkg.Describe(reg, cfg.Version, level, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if descriptions {
				session.WriteToggles(out, snap.Toggles, true)
			}
			session.WriteSummary(out, snap.Summary)
			return nil
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", "", "Raw level to show")
	cmd.Flags().BoolVarP(&descriptions, "describe", "d", false, "Also list every constant with its description")
	return cmd
}

func newConstantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "constants",
		Short: "List the constants of a version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := pkg.Describe(reg, cfg.Version, "", logger)
			if err != nil {
				return err
			}
			session.WriteToggles(cmd.OutOrStdout(), snap.Toggles, true)
			return nil
		},
	}
}

func newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List known PHP versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := pkg.Describe(reg, cfg.Version, "", logger)
			if err != nil {
				return err
			}
			session.WriteVersions(cmd.OutOrStdout(), snap.Versions)
			return nil
		},
	}
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a symbolic expression such as 'E_ALL & ~E_NOTICE'",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := pkg.Evaluate(reg, cfg.Version, strings.Join(args, " "), logger)
			if err != nil {
				return err
			}
			session.WriteSummary(cmd.OutOrStdout(), snap.Summary)
			return nil
		},
	}
}

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive session (the default command)",
		Args:  cobra.NoArgs,
		RunE:  runSession,
	}
}

func runSession(cmd *cobra.Command, args []string) error {
	calc, err := newCalculator()
	if err != nil {
		return err
	}
	in := cmd.InOrStdin()
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return session.New(calc, in, cmd.OutOrStdout(), interactive, logger).Run()
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := newCalculator()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			defer logOutput.Flush()

			logger.Info("Starting calculator server", "listen", cfg.Listen)
			if err := web.NewServer(calc, logger).ListenAndServe(ctx, cfg.Listen); err != nil {
				logger.Error("Server failed", "error", err)
				return err
			}
			logger.Info("Calculator server stopped")
			return nil
		},
	}
	cmd.Flags().String(config.KeyListen, config.DefaultListen, "HTTP listen address")
	return cmd
}

func newRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "registry",
		Short: "Print the active constant registry as YAML",
		Long: `Print the active constant registry as YAML. The output is a valid
--registry file and a starting point for custom tables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := reg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newCalculator() (*calculator.Calculator, error) {
	calc, err := calculator.New(reg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Version != "" {
		if err := calc.SelectVersion(cfg.Version); err != nil {
			return nil, err
		}
	}
	return calc, nil
}
