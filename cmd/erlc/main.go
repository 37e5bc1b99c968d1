package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/erlc/internal/config"
	"github.com/provide-io/erlc/pkg/logging"
	"github.com/provide-io/erlc/pkg/registry"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	rootCmd     *cobra.Command
	versionFlag bool

	logOutput = logging.NewOutput(os.Stderr)

	// resolved in PersistentPreRunE
	cfg    config.Config
	logger hclog.Logger = logging.NewLogger("erlc", logging.GetLogLevel(), logOutput)
	reg    *registry.Registry
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("erlc %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "erlc",
		Short:         "PHP error_reporting level calculator",
		Long:          `Compose PHP error_reporting levels from named constants, per PHP version.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				printVersion()
				return nil
			}
			return runSession(cmd, args)
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	cmd.AddCommand(
		newShowCmd(),
		newConstantsCmd(),
		newVersionsCmd(),
		newEvalCmd(),
		newSessionCmd(),
		newServeCmd(),
		newRegistryCmd(),
	)
	return cmd
}

// resolve loads config, logger and registry for the command about to run.
func resolve(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return fmt.Errorf("load config: %w", err)
	}

	logger = cfg.Logger("erlc", logOutput)

	reg, err = cfg.LoadRegistry()
	if err != nil {
		logger.Error("Failed to load registry", "path", cfg.Registry, "error", err)
		return err
	}
	logger.Debug("config resolved", "php_version", cfg.Version, "registry", cfg.Registry)
	return nil
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersion()
		os.Exit(0)
	}

	err := rootCmd.Execute()
	_ = logOutput.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
