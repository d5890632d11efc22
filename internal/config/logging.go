package config

import (
	"github.com/rshade/catalogctl/internal/logging"
)

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"          validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format"         validate:"oneof=json console"`
	File   string `yaml:"file,omitempty"`
}

// ToLoggingConfig converts the file configuration into a logging.Config.
// A configured file switches output to that file; otherwise logs go to stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
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

// GetLoggingConfig returns a copy of the global Logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
