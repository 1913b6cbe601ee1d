package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logLevelDebugStringConstant          = "debug"
	logLevelInfoStringConstant           = "info"
	logLevelWarnStringConstant           = "warn"
	logLevelErrorStringConstant          = "error"
	logFormatStructuredStringConstant    = "structured"
	logFormatConsoleStringConstant       = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant = "unsupported log format: %s"
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

// LoggerFactory builds zap.Logger instances writing diagnostics to a single sink.
type LoggerFactory struct {
	sink zapcore.WriteSyncer
}

// NewLoggerFactory constructs a factory that writes to standard error.
func NewLoggerFactory() *LoggerFactory {
	return NewLoggerFactoryWithSink(os.Stderr)
}

// NewLoggerFactoryWithSink constructs a factory writing to the provided writer.
func NewLoggerFactoryWithSink(sink io.Writer) *LoggerFactory {
	if sink == nil {
		sink = os.Stderr
	}
	return &LoggerFactory{sink: zapcore.Lock(zapcore.AddSync(sink))}
}

// ParseLogLevel normalizes a textual level such as " INFO ".
func ParseLogLevel(value string) (LogLevel, error) {
	candidate := LogLevel(strings.ToLower(strings.TrimSpace(value)))
	if _, known := logLevelMapping[candidate]; !known {
		return "", fmt.Errorf(unsupportedLogLevelTemplateConstant, value)
	}
	return candidate, nil
}

// ParseLogFormat normalizes a textual format such as "Console".
func ParseLogFormat(value string) (LogFormat, error) {
	candidate := LogFormat(strings.ToLower(strings.TrimSpace(value)))
	switch candidate {
	case LogFormatStructured, LogFormatConsole:
		return candidate, nil
	default:
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, value)
	}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	logLevel, levelError := ParseLogLevel(string(requestedLogLevel))
	if levelError != nil {
		return nil, levelError
	}

	logFormat, formatError := ParseLogFormat(string(requestedLogFormat))
	if formatError != nil {
		return nil, formatError
	}

	var encoder zapcore.Encoder
	switch logFormat {
	case LogFormatConsole:
		encoderConfiguration := zap.NewDevelopmentEncoderConfig()
		encoderConfiguration.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfiguration)
	default:
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, factory.sink, zap.NewAtomicLevelAt(logLevelMapping[logLevel]))
	return zap.New(core, zap.AddCaller()), nil
}
