package utils_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynamic-superb/taskops/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant = "supported_log_level_%s_format_%s"
	testLoggerFactorySubtestTemplateConstant     = "%d_%s"
	testLogMessageConstant                       = "logger_factory_test_message"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatConsole,
			expectStructuredLog: false,
		},
		{
			name:                "mixed_case_values",
			requestedLogLevel:   utils.LogLevel(" INFO "),
			requestedLogFormat:  utils.LogFormat("Structured"),
			expectStructuredLog: true,
		},
		{
			name:               "unsupported_log_level",
			requestedLogLevel:  utils.LogLevel("verbose"),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               "unsupported_log_format",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat("xml"),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(subTest *testing.T) {
			outputBuffer := &bytes.Buffer{}
			loggerFactory := utils.NewLoggerFactoryWithSink(outputBuffer)

			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)
			if testCase.expectError {
				require.Error(subTest, creationError)
				require.Nil(subTest, logger)
				return
			}

			require.NoError(subTest, creationError)
			logger.Info(testLogMessageConstant)
			require.NoError(subTest, logger.Sync())

			capturedOutput := strings.TrimSpace(outputBuffer.String())
			require.Contains(subTest, capturedOutput, testLogMessageConstant)
			require.Equal(subTest, testCase.expectStructuredLog, json.Valid([]byte(capturedOutput)))
		})
	}
}

func TestLoggerFactoryHonorsLevel(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}
	logger, creationError := utils.NewLoggerFactoryWithSink(outputBuffer).CreateLogger(utils.LogLevelWarn, utils.LogFormatStructured)
	require.NoError(testInstance, creationError)

	logger.Info("suppressed")
	logger.Warn("emitted")

	require.NotContains(testInstance, outputBuffer.String(), "suppressed")
	require.Contains(testInstance, outputBuffer.String(), "emitted")
}
