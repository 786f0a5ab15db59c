package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvironmentVariable selects the minimum level of diagnostic messages written to stderr.
const LogLevelEnvironmentVariable = "CTXDUMP_LOG_LEVEL"

// NewApplicationLogger constructs a zap logger configured for human-readable console output on stderr.
// Only the message is printed so warnings read like plain CLI diagnostics.
func NewApplicationLogger(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.Encoding = "console"
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.Sampling = nil
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.LevelKey = ""
	config.EncoderConfig.NameKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""
	return config.Build()
}

// LogLevelFromEnvironment reads LogLevelEnvironmentVariable, falling back to info.
func LogLevelFromEnvironment() zapcore.Level {
	rawLevel := strings.TrimSpace(os.Getenv(LogLevelEnvironmentVariable))
	if rawLevel == "" {
		return zapcore.InfoLevel
	}
	parsedLevel, parseError := zapcore.ParseLevel(rawLevel)
	if parseError != nil {
		return zapcore.InfoLevel
	}
	return parsedLevel
}
