package utils_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/temirov/ctxdump/internal/utils"
)

// TestLogLevelFromEnvironment verifies log level selection from the environment.
func TestLogLevelFromEnvironment(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		value    string
		expected zapcore.Level
	}{
		{testName: "unset defaults to info", value: "", expected: zapcore.InfoLevel},
		{testName: "debug", value: "debug", expected: zapcore.DebugLevel},
		{testName: "upper case warn", value: "WARN", expected: zapcore.WarnLevel},
		{testName: "invalid falls back", value: "chatty", expected: zapcore.InfoLevel},
	}
	for _, testCase := range testCases {
		testingInstance.Run(testCase.testName, func(subTest *testing.T) {
			subTest.Setenv(utils.LogLevelEnvironmentVariable, testCase.value)
			if actual := utils.LogLevelFromEnvironment(); actual != testCase.expected {
				subTest.Fatalf("expected %v, got %v", testCase.expected, actual)
			}
		})
	}
}

// TestNewApplicationLogger verifies the logger honours the requested level.
func TestNewApplicationLogger(testingInstance *testing.T) {
	logger, loggerError := utils.NewApplicationLogger(zapcore.WarnLevel)
	if loggerError != nil {
		testingInstance.Fatalf("NewApplicationLogger failed: %v", loggerError)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		testingInstance.Fatalf("info messages must be filtered at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		testingInstance.Fatalf("warn messages must be enabled at warn level")
	}
}
