package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/flexblend/internal/cli"
	"github.com/rshade/flexblend/internal/config"
)

// isolateCLI points FLEXBLEND_HOME at a temp dir, silences logging and
// resets the global config before and after the test.
func isolateCLI(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvTankSize, "")
	t.Setenv(config.EnvBaseEthanol, "")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCLI runs the root command with args and returns stdout and stderr.
func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// mustExecuteCLI is executeCLI that fails the test on error.
func mustExecuteCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := executeCLI(t, args...)
	require.NoError(t, err, "stderr: %s", stderr)
	return out
}
