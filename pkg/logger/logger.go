package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instances for application-wide use
var (
	// Logger is the main Zap logger instance for structured logging
	Logger *zap.Logger
	// Sugar is the sugared logger for convenient printf-style logging
	Sugar *zap.SugaredLogger
)

// LogLevel represents the available logging levels for the application
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds configuration for the logger system
type Config struct {
	Level      LogLevel
	Format     string
	OutputPath string
}

// DefaultConfig returns a default logger configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      LogLevelInfo,
		Format:     "console",
		OutputPath: "stdout",
	}
}

// Init initializes the global logger with the provided configuration
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format), output, parseLogLevel(cfg.Level))
	SetLogger(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))

	return nil
}

// SetLogger replaces the global loggers. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	Logger = l
	Sugar = nil
	if l != nil {
		Sugar = l.Sugar()
	}
}

// newEncoder returns a JSON encoder for "json" and a colored console encoder
// otherwise. Both write ISO8601 times under "timestamp".
func newEncoder(format string) zapcore.Encoder {
	if format == "json" {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func openOutput(path string) (zapcore.WriteSyncer, error) {
	switch path {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}

// Sync flushes buffered log entries. Safe to call before Init.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// parseLogLevel maps a configured level to zap; unknown values mean info.
func parseLogLevel(level LogLevel) zapcore.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Info logs a structured message at info level.
func Info(msg string, fields ...zap.Field) {
	if Logger != nil {
		Logger.WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
	}
}

func Debugf(template string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Debugf(template, args...)
	}
}

func Infof(template string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Infof(template, args...)
	}
}

func Warnf(template string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Warnf(template, args...)
	}
}

func Errorf(template string, args ...interface{}) {
	if Sugar != nil {
		Sugar.WithOptions(zap.AddCallerSkip(1)).Errorf(template, args...)
	}
}
