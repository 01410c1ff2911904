package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/flexblend/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates $FLEXBLEND_HOME/config.yaml (default ~/.flexblend/config.yaml)
with the built-in defaults: a 12.4 gallon tank, 93E10 base fuel and table output.`,
		Example: `  # Create configuration
  flexblend config init

  # Create configuration, overwriting existing
  flexblend config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

// initConfig writes the default configuration file.
func initConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Default()

	if !force {
		if _, err := os.Stat(cfg.ConfigPath()); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), err)
		}
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}
