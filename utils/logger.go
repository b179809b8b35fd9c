package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a levelled, printf-style logger backed by zap
type Logger struct {
	sugar *zap.SugaredLogger
}

var logLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// NewLogger creates a logger writing to stdout. encoding is "console" or "json".
func NewLogger(level, encoding string) (*Logger, error) {
	lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		if level != "" {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
		lvl = zapcore.InfoLevel
	}
	if encoding == "" {
		encoding = "console"
	}
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("unknown log encoding %q", encoding)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{sugar: z.Sugar()}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// NewLoggerFromZap wraps an existing zap logger.
func NewLoggerFromZap(z *zap.Logger) *Logger {
	return &Logger{sugar: z.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.sugar.Infof(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.sugar.Errorf(msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugf(msg, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Leveled adapts the logger to key/value style interfaces such as the one
// go-retryablehttp expects.
func (l *Logger) Leveled() *LeveledLogger {
	return &LeveledLogger{sugar: l.sugar}
}

// LeveledLogger logs structured key/value pairs.
type LeveledLogger struct {
	sugar *zap.SugaredLogger
}

func (l *LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

func (l *LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}
