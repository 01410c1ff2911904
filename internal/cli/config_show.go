package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/flexblend/internal/config"
)

// NewConfigShowCmd creates the config show command that prints the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Prints the configuration in effect for this invocation as YAML: built-in
defaults, then the config file, then FLEXBLEND_* environment variables, then
any --config overlay.`,
		Example: `  flexblend config show
  flexblend --config ./truck.yaml config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			cmd.Printf("# %s\n", cfg.ConfigPath())
			cmd.Print(string(data))
			return nil
		},
	}
}
