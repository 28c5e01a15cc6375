package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is an interface that wraps the Logger methods.
//
//go:generate mockgen -source log.go -destination=mock/log_mock.go -package=logger_mock
type Interface interface {
	Debug(message string, fields ...Field)
	DebugContext(ctx context.Context, message string, fields ...Field)
	Error(err error, fields ...Field)
	ErrorContext(ctx context.Context, err error, fields ...Field)
	GetZap() *zap.Logger
	Info(message string, fields ...Field)
	InfoContext(ctx context.Context, message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WarnContext(ctx context.Context, message string, fields ...Field)
	WithFields(fields ...Field) *Logger
}

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds key-value to be written to log.
type Field struct {
	Key   string
	Value any
}

// Options holds configuration options for the logger.
type Options struct {
	level           Level
	outputPaths     []string
	timeKey         string
	levelKey        string
	callerTraceSkip int
}

// Level represents the severity level of the log.
type Level string

var (
	// DebugLevel is used for debug messages.
	DebugLevel Level = "debug"
	// InfoLevel is used for informational messages.
	InfoLevel Level = "info"
	// WarnLevel is used for warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel is used for error messages.
	ErrorLevel Level = "error"

	messageKey string = "message"
)

func (level Level) getZapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel // use info level as default, same as zap's default production config
	}
}

// NewLogger creates new Logger instance with configuration options.
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	var buildOptions []zap.Option

	// apply configuration from options
	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.getZapLevel())
		}
		if opt.outputPaths != nil {
			cfg.OutputPaths = opt.outputPaths
		}
		if opt.timeKey != "" {
			cfg.EncoderConfig.TimeKey = opt.timeKey
		}
		if opt.levelKey != "" {
			cfg.EncoderConfig.LevelKey = opt.levelKey
		}
		if opt.callerTraceSkip > 0 {
			buildOptions = append(buildOptions, zap.AddCallerSkip(opt.callerTraceSkip))
		}
	}

	// change default message key `msg` to `message`
	cfg.EncoderConfig.MessageKey = messageKey

	logger, err := cfg.Build(buildOptions...)
	return &Logger{
		logger: logger,
	}, err
}

// WithLoggingLevel sets the minimum log level that will be logged.
func WithLoggingLevel(level Level) Options {
	return Options{level: level}
}

// WithOutputPaths sets the log output paths.
func WithOutputPaths(paths []string) Options {
	return Options{outputPaths: paths}
}

// WithCallerTraceSkip skips the given number of callers when reporting the caller.
func WithCallerTraceSkip(skip int) Options {
	return Options{callerTraceSkip: skip}
}

// Sync flush the buffered log entries
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap returns the underlying zap.Logger.
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

// WithFields returns a child logger carrying the given fields.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(zapFields(fields)...)}
}

// Debug logs a message at debug level.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, zapFields(fields)...)
}

// DebugContext logs a message at debug level with context.
func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.logger.Debug(message, zapFields(fields)...)
}

// Info logs a message at info level.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, zapFields(fields)...)
}

// InfoContext logs a message at info level with context.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.logger.Info(message, zapFields(fields)...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, zapFields(fields)...)
}

// WarnContext logs a message at warn level with context.
func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.logger.Warn(message, zapFields(fields)...)
}

// Error logs an error at error level.
func (l *Logger) Error(err error, fields ...Field) {
	l.logger.Error(err.Error(), zapFields(fields)...)
}

// ErrorContext logs an error at error level with context.
func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.logger.Error(err.Error(), zapFields(fields)...)
}

func zapFields(fields []Field) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		zf = append(zf, zap.Any(f.Key, f.Value))
	}
	return zf
}
