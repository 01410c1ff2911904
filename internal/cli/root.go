package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/flexblend/internal/config"
	"github.com/rshade/flexblend/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the flexblend CLI.
// It loads configuration, wires up logging and registers the mix and config commands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "flexblend",
		Short:   "Ethanol blend calculator",
		Long:    "flexblend: work out how much E85 and base fuel to add to reach a target ethanol content",
		Version: ver,
		Example: rootCmdExample,
		// main prints the error once, with the exit code attached.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "YAML file merged over the user configuration")
	cmd.AddCommand(NewMixCmd(), newConfigCmd())

	// Cobra skips PersistentPostRunE when RunE fails.
	closeOnRunError(cmd, func() error { return cleanupLogging(logResult) })

	return cmd
}

// closeOnRunError wraps the RunE of cmd and its subcommands so cleanup runs
// when the command fails.
func closeOnRunError(cmd *cobra.Command, cleanup func() error) {
	for _, sub := range cmd.Commands() {
		closeOnRunError(sub, cleanup)
	}
	if cmd.RunE == nil {
		return
	}
	runE := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := runE(c, args)
		if err != nil {
			_ = cleanup()
		}
		return err
	}
}

const rootCmdExample = `  # Fill a half-full 12.4 gallon tank of E10 up to E30
  flexblend mix --fuel-level 50 --current-ethanol 10 --target 30 --tank-size 12.4

  # Same calculation as JSON
  flexblend mix --fuel-level 50 --current-ethanol 10 --target 30 --output json

  # Adjust the inputs interactively
  flexblend mix --interactive

  # Write a default configuration file
  flexblend config init`

// loadConfig builds the effective configuration for this invocation and
// publishes it as the global config.
func loadConfig(cmd *cobra.Command) error {
	cfg := config.New()

	overlay, _ := cmd.Flags().GetString("config")
	if overlay != "" {
		if err := config.ShallowMergeYAML(cfg, overlay); err != nil {
			return fmt.Errorf("loading --config: %w", err)
		}
	}

	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
