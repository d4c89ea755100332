// Package log holds the process-wide zap logger used by the decoplan command.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	base  *zap.Logger
)

// Init builds the package logger. Debug selects the development config;
// otherwise only warnings and errors are written.
func Init(debug bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		l, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	base = l
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()

	return nil
}

// Logger returns the base logger, falling back to a no-op one before Init.
func Logger() *zap.Logger {
	if base == nil {
		base = zap.NewNop()
		sugar = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
	}

	return base
}

// Sugar returns the sugared logger.
func Sugar() *zap.SugaredLogger {
	if sugar == nil {
		Logger()
	}

	return sugar
}

// Sync flushes any buffered log entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// Debugf logs a formatted debug message.
func Debugf(template string, args ...interface{}) {
	Sugar().Debugf(template, args...)
}

// Infow logs a message with key/value context at info level.
func Infow(msg string, keysAndValues ...interface{}) {
	Sugar().Infow(msg, keysAndValues...)
}

// Warnw logs a message with key/value context at warn level.
func Warnw(msg string, keysAndValues ...interface{}) {
	Sugar().Warnw(msg, keysAndValues...)
}
