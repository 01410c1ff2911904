package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/flexblend/internal/blend"
	"github.com/rshade/flexblend/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.flexblend/config.yaml for syntax and semantic correctness.

This includes:
- Schema version compatibility
- Output format and precision
- Tank size and base fuel ethanol content
- Solver guard and logging level`,
		Example: `  # Validate current configuration
  flexblend config validate

  # Validate and show detailed information
  flexblend config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	// New() tolerates a broken file, so reload it to surface parse errors.
	if err := config.Default().Load(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Volume unit: %s\n", cfg.Output.Unit)
	cmd.Printf("  Tank size: %s %s\n", blend.FormatVolume(cfg.Tank.Size, cfg.Output.Precision), cfg.Output.Unit)
	cmd.Printf("  Base fuel: %s (%g%% ethanol)\n", baseLabelOrDefault(cfg), cfg.Fuel.BaseEthanol)
	if cfg.Solver.MaxFuelLevel > 0 {
		cmd.Printf("  Max fuel level: %g%%\n", cfg.Solver.MaxFuelLevel)
	} else {
		cmd.Println("  Max fuel level: disabled")
	}
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
}

func baseLabelOrDefault(cfg *config.Config) string {
	if cfg.Fuel.BaseLabel != "" {
		return cfg.Fuel.BaseLabel
	}
	return blend.BaseFuelLabel(cfg.Fuel.BaseEthanol)
}
