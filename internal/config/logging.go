package config

import (
	"os"
	"path/filepath"

	"github.com/rshade/flexblend/internal/logging"
)

// ToLoggingConfig converts LoggingConfig to logging.Config.
//
// If File is set, Output becomes "file"; otherwise output goes to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the Logging section of the global config.
// Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}

// DefaultLogFile returns the log file path used when logging to a file is
// requested without an explicit path.
func DefaultLogFile() string {
	return filepath.Join(HomeDir(), "logs", logFileName)
}

// EnsureLogDir creates the directory of the configured log file.
func EnsureLogDir() error {
	file := GetLoggingConfig().File
	if file == "" {
		file = DefaultLogFile()
	}
	return os.MkdirAll(filepath.Dir(file), configDirMode)
}
