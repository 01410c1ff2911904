package cli

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/flexblend/internal/blend"
	"github.com/rshade/flexblend/internal/config"
	"github.com/rshade/flexblend/internal/logging"
	"github.com/rshade/flexblend/internal/tui"
)

// Exit codes returned by main for mix failures.
const (
	ExitCodeFailure    = 1
	ExitCodeInputError = 2
)

// Defaults mirror the starting positions of the calculator sliders.
const (
	defaultFuelLevel      = 50
	defaultCurrentEthanol = 10
	defaultTargetEthanol  = 30
)

// MixParams holds the parameters for the mix command.
// Exported for testing.
type MixParams struct {
	FuelLevel      float64
	CurrentEthanol float64
	TankSize       float64
	TargetEthanol  float64
	BaseEthanol    float64
	MaxFuelLevel   float64
	BaseLabel      string
	Output         string
	Interactive    bool
}

// MixError carries a classified solver failure out of the mix command.
// The message has already been rendered when it is returned.
type MixError struct {
	Kind blend.ErrorKind
	Err  error
}

func (e *MixError) Error() string {
	return e.Err.Error()
}

func (e *MixError) Unwrap() error {
	return e.Err
}

// ExitCode returns ExitCodeInputError for problems the user can fix by
// changing inputs and ExitCodeFailure otherwise.
func (e *MixError) ExitCode() int {
	if blend.IsInputError(e.Err) {
		return ExitCodeInputError
	}
	return ExitCodeFailure
}

// NewMixCmd creates the "mix" command that computes the E85 and base fuel volumes.
func NewMixCmd() *cobra.Command {
	var params MixParams

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Calculate how much E85 and base fuel to add",
		Long: `Calculate the volumes of E85 and base fuel that fill the tank to capacity
at the target ethanol percentage.

Tank size, base fuel ethanol content and base fuel label default to the
configuration file (see "flexblend config show").

When the exact target cannot be reached the tank is filled with a single fuel
and a warning is printed alongside the volumes.`,
		Example: `  # Half a tank of E10, target E30
  flexblend mix --fuel-level 50 --current-ethanol 10 --target 30

  # 18.5 gallon tank, ethanol-free base fuel, JSON output
  flexblend mix --fuel-level 25 --current-ethanol 0 --target 40 \
    --tank-size 18.5 --base-ethanol 0 --output json

  # Interactive calculator
  flexblend mix --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			applyConfigDefaults(cmd, &params, config.GetGlobalConfig())
			return executeMix(cmd, params)
		},
	}

	cmd.Flags().Float64Var(&params.FuelLevel, "fuel-level", defaultFuelLevel, "current fuel level (% of tank)")
	cmd.Flags().Float64Var(&params.CurrentEthanol, "current-ethanol", defaultCurrentEthanol,
		"ethanol content of the fuel in the tank (%)")
	cmd.Flags().Float64Var(&params.TargetEthanol, "target", defaultTargetEthanol, "target ethanol content (%)")
	cmd.Flags().Float64Var(&params.TankSize, "tank-size", 0, "tank capacity (default from config)")
	cmd.Flags().Float64Var(&params.BaseEthanol, "base-ethanol", 0,
		"ethanol content of the base fuel, e.g. 10 for E10 (default from config)")
	cmd.Flags().StringVar(&params.BaseLabel, "base-label", "", "display name of the base fuel (default from config)")
	cmd.Flags().Float64Var(&params.MaxFuelLevel, "max-fuel-level", 0,
		"refuse to calculate above this fuel level (%), 0 disables (default from config)")
	cmd.Flags().StringVar(&params.Output, "output", "", "output format: table, json, ndjson (default from config)")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "launch the interactive calculator")

	return cmd
}

// applyConfigDefaults fills parameters that were not set on the command line.
func applyConfigDefaults(cmd *cobra.Command, params *MixParams, cfg *config.Config) {
	if !cmd.Flags().Changed("tank-size") {
		params.TankSize = cfg.Tank.Size
	}
	if !cmd.Flags().Changed("base-ethanol") {
		params.BaseEthanol = cfg.Fuel.BaseEthanol
		// A configured label only describes the configured base fuel.
		if !cmd.Flags().Changed("base-label") {
			params.BaseLabel = cfg.Fuel.BaseLabel
		}
	}
	if !cmd.Flags().Changed("max-fuel-level") {
		params.MaxFuelLevel = cfg.Solver.MaxFuelLevel
	}
	if !cmd.Flags().Changed("output") {
		params.Output = cfg.Output.DefaultFormat
	}
}

// Input converts the parameters to a solver input.
func (p MixParams) Input() blend.Input {
	return blend.Input{
		FuelLevel:      p.FuelLevel,
		CurrentEthanol: p.CurrentEthanol,
		TankSize:       p.TankSize,
		TargetEthanol:  p.TargetEthanol,
		BaseEthanol:    p.BaseEthanol,
	}
}

// ValidateOutputFormat rejects unknown --output values.
func ValidateOutputFormat(format string) error {
	switch format {
	case config.OutputFormatTable, config.OutputFormatJSON, config.OutputFormatNDJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or ndjson)", format)
	}
}

// executeMix runs the solver and renders the outcome.
func executeMix(cmd *cobra.Command, params MixParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	if err := ValidateOutputFormat(params.Output); err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()
	summary := blend.SummaryOptions{
		Unit:      cfg.Output.Unit,
		BaseLabel: params.BaseLabel,
		Precision: cfg.Output.Precision,
	}
	opts := blend.Options{MaxFuelLevel: params.MaxFuelLevel}
	in := params.Input()

	log.Debug().Ctx(ctx).
		Str("operation", "mix").
		Float64("fuel_level", in.FuelLevel).
		Float64("current_ethanol", in.CurrentEthanol).
		Float64("tank_size", in.TankSize).
		Float64("target_ethanol", in.TargetEthanol).
		Float64("base_ethanol", in.BaseEthanol).
		Float64("max_fuel_level", opts.MaxFuelLevel).
		Bool("interactive", params.Interactive).
		Msg("starting mix calculation")

	if params.Interactive {
		return executeInteractiveMix(cmd, params, in, opts, summary)
	}

	mix, err := blend.SolveWithOptions(in, opts)
	if renderErr := renderMix(cmd.OutOrStdout(), params.Output, mix, err, summary); renderErr != nil {
		return fmt.Errorf("rendering mix: %w", renderErr)
	}

	if err != nil {
		log.Info().Ctx(ctx).
			Str("operation", "mix").
			Str("kind", blend.Kind(err).String()).
			Err(err).
			Msg("mix calculation rejected")
		cmd.SilenceErrors = true
		return &MixError{Kind: blend.Kind(err), Err: err}
	}

	log.Info().Ctx(ctx).
		Str("operation", "mix").
		Float64("additive", mix.Additive).
		Float64("base", mix.Base).
		Str("clamp", mix.Clamp.String()).
		Dur("duration_ms", time.Since(start)).
		Msg("mix calculation complete")

	return nil
}

// executeInteractiveMix runs the TUI seeded with in and renders the last
// result after the user quits.
func executeInteractiveMix(
	cmd *cobra.Command,
	params MixParams,
	in blend.Input,
	opts blend.Options,
	summary blend.SummaryOptions,
) error {
	ctx := cmd.Context()

	solveFn := func(next blend.Input) (blend.Mix, error) {
		return blend.SolveWithOptions(next, opts)
	}
	model := tui.NewMixModel(ctx, in, solveFn, summary)
	program := tea.NewProgram(model, tea.WithContext(ctx))

	finalModel, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running interactive calculator: %w", err)
	}

	mixModel, ok := finalModel.(*tui.MixModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T, expected *tui.MixModel", finalModel)
	}

	mix, solveErr := mixModel.Result()
	if solveErr != nil {
		return nil
	}
	cmd.Println("\nFinal Mix:")
	return renderMix(cmd.OutOrStdout(), params.Output, mix, nil, summary)
}
