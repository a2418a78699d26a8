// Package logger holds the process-wide zap logger. Every record goes to
// stderr: on the stdio transport stdout belongs to the MCP stream.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is shared by the CLI, the Jira client and the tool middleware.
var Log *zap.Logger

// Init builds a JSON logger at level (LOG_LEVEL). Unknown levels are an error.
func Init(level string) error {
	var zapLevel zapcore.Level
	err := zapLevel.UnmarshalText([]byte(level))
	if err != nil {
		return err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// no stack traces
	config.EncoderConfig.StacktraceKey = ""
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return err
	}

	Log = logger
	return nil
}

// GetLogger returns Log, falling back to a production logger for code paths
// (tests, the tools command) that run before Init.
func GetLogger() *zap.Logger {
	if Log == nil {
		var err error
		Log, err = zap.NewProduction(zap.WithCaller(false))
		if err != nil {
			panic(err)
		}
	}
	return Log
}

// Sync flushes Log; it is a no-op before Init.
func Sync() error {
	if Log == nil {
		return nil
	}
	return Log.Sync()
}
