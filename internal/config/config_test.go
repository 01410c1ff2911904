package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/flexblend/internal/config"
	"github.com/rshade/flexblend/internal/logging"
)

// isolateHome points FLEXBLEND_HOME at a temp dir and resets global state.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

func TestDefault(t *testing.T) {
	home := isolateHome(t)

	cfg := config.Default()

	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, config.OutputFormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.InDelta(t, 12.4, cfg.Tank.Size, 1e-9)
	assert.InDelta(t, 10, cfg.Fuel.BaseEthanol, 1e-9)
	assert.Zero(t, cfg.Solver.MaxFuelLevel)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoad(t *testing.T) {
	isolateHome(t)

	cfg := config.Default()
	cfg.Tank.Size = 16
	cfg.Fuel.BaseLabel = "91E10"
	require.NoError(t, cfg.Save())

	info, err := os.Stat(cfg.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded := config.New()
	assert.InDelta(t, 16, loaded.Tank.Size, 1e-9)
	assert.Equal(t, "91E10", loaded.Fuel.BaseLabel)
	assert.Equal(t, config.CurrentVersion, loaded.Version)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	isolateHome(t)

	cfg := config.Default()
	require.NoError(t, cfg.Load())
	assert.Equal(t, config.Default().Tank, cfg.Tank)
}

func TestLoad_MalformedFile(t *testing.T) {
	home := isolateHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("tank: ["), 0o600))

	cfg := config.Default()
	err := cfg.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")

	// New tolerates the broken file and keeps defaults.
	assert.InDelta(t, 12.4, config.New().Tank.Size, 1e-9)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		config.EnvLogLevel:     "debug",
		config.EnvLogFormat:    "json",
		config.EnvOutputFormat: "ndjson",
		config.EnvTankSize:     "20.5",
		config.EnvBaseEthanol:  "not-a-number",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := config.Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "ndjson", cfg.Output.DefaultFormat)
	assert.InDelta(t, 20.5, cfg.Tank.Size, 1e-9)
	assert.InDelta(t, 10, cfg.Fuel.BaseEthanol, 1e-9, "unparseable value ignored")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"empty version accepted", func(c *config.Config) { c.Version = "" }, ""},
		{"minor bump accepted", func(c *config.Config) { c.Version = "1.3.0" }, ""},
		{"major bump rejected", func(c *config.Config) { c.Version = "2.0.0" }, "not compatible"},
		{"garbage version", func(c *config.Config) { c.Version = "one" }, "version"},
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, "default_format"},
		{"bad precision", func(c *config.Config) { c.Output.Precision = 9 }, "precision"},
		{"zero tank", func(c *config.Config) { c.Tank.Size = 0 }, "tank.size"},
		{"base as rich as E85", func(c *config.Config) { c.Fuel.BaseEthanol = 85 }, "base_ethanol"},
		{"guard above 100", func(c *config.Config) { c.Solver.MaxFuelLevel = 120 }, "max_fuel_level"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGlobalConfig(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvOutputFormat, "json")

	assert.Equal(t, "json", config.GetDefaultOutputFormat())

	custom := config.Default()
	custom.Output.DefaultFormat = "ndjson"
	config.SetGlobalConfig(custom)
	assert.Same(t, custom, config.GetGlobalConfig())
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "warn", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, got.Output)
	assert.Equal(t, "warn", got.Level)

	lc.File = "/tmp/flexblend.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/flexblend.log", got.File)
}

func TestEnsureLogDir(t *testing.T) {
	home := isolateHome(t)

	require.NoError(t, config.EnsureLogDir())

	info, err := os.Stat(filepath.Join(home, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
