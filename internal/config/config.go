// Package config loads, validates and saves the flexblend configuration file
// (~/.flexblend/config.yaml) and applies FLEXBLEND_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvHome          = "FLEXBLEND_HOME"
	EnvLogLevel      = "FLEXBLEND_LOG_LEVEL"
	EnvLogFormat     = "FLEXBLEND_LOG_FORMAT"
	EnvOutputFormat  = "FLEXBLEND_OUTPUT_FORMAT"
	EnvTankSize      = "FLEXBLEND_TANK_SIZE"
	EnvBaseEthanol   = "FLEXBLEND_BASE_ETHANOL"
	configDirName    = ".flexblend"
	configFileName   = "config.yaml"
	logFileName      = "flexblend.log"
	configFileMode   = 0o600
	configDirMode    = 0o750
	defaultPrecision = 2
)

// Output format names.
const (
	OutputFormatTable  = "table"
	OutputFormatJSON   = "json"
	OutputFormatNDJSON = "ndjson"
)

// Config is the complete flexblend configuration.
type Config struct {
	Version string        `yaml:"version"`
	Output  OutputConfig  `yaml:"output"`
	Tank    TankConfig    `yaml:"tank"`
	Fuel    FuelConfig    `yaml:"fuel"`
	Solver  SolverConfig  `yaml:"solver"`
	Logging LoggingConfig `yaml:"logging"`

	configPath string
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
	Unit          string `yaml:"unit"`
}

// TankConfig holds the default tank used when --tank-size is not given.
type TankConfig struct {
	Size float64 `yaml:"size"`
}

// FuelConfig describes the base fuel available at the pump.
type FuelConfig struct {
	// BaseEthanol is the ethanol percentage of the base fuel.
	BaseEthanol float64 `yaml:"base_ethanol"`

	// BaseLabel is the display name of the base fuel, e.g. "93E10".
	BaseLabel string `yaml:"base_label"`
}

// SolverConfig holds optional solver guards.
type SolverConfig struct {
	// MaxFuelLevel rejects calculations above this fill percentage. Zero disables it.
	MaxFuelLevel float64 `yaml:"max_fuel_level"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config populated with built-in defaults only.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output: OutputConfig{
			DefaultFormat: OutputFormatTable,
			Precision:     defaultPrecision,
			Unit:          "gallons",
		},
		Tank: TankConfig{Size: 12.4},
		Fuel: FuelConfig{BaseEthanol: 10, BaseLabel: "93E10"},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		configPath: filepath.Join(HomeDir(), configFileName),
	}
}

// New returns the defaults overlaid with the config file (if present) and the
// environment. A broken config file is ignored so the CLI stays usable; run
// `flexblend config validate` to see the problem.
func New() *Config {
	cfg := Default()
	_ = cfg.Load()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// HomeDir returns the flexblend home directory.
func HomeDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// ConfigPath returns the file the config is loaded from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file used by Load and Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Load reads the config file over c. A missing file is not an error.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", c.configPath, err)
	}
	return nil
}

// Save writes c to its config path, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFileMode); err != nil {
		return fmt.Errorf("writing config %s: %w", c.configPath, err)
	}
	return nil
}

// ApplyEnv applies FLEXBLEND_* overrides using lookupEnv.
// Unparseable numeric values are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvTankSize); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Tank.Size = f
		}
	}
	if v, ok := lookupEnv(EnvBaseEthanol); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Fuel.BaseEthanol = f
		}
	}
}

//nolint:gochecknoglobals // Process-wide config shared by CLI commands.
var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// GetGlobalConfig returns the process-wide config, loading it on first use.
func GetGlobalConfig() *Config {
	globalMu.RLock()
	cfg := globalConfig
	globalMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// SetGlobalConfig replaces the process-wide config.
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalConfigForTest drops the process-wide config so the next
// GetGlobalConfig reloads it.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetDefaultOutputFormat returns the configured default output format.
func GetDefaultOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}
