package logger

import (
	"github.com/triplex1/trading-notification-bot/internal/infrastructure/config"
)

// New creates a logger instance based on configuration
func New(cfg *config.Config) (Logger, error) {
	return NewZap(ZapOptions{
		ServiceName: "trading-notification-bot",
		IsPretty:    cfg.Environment == "development",
		Level:       parseLogLevel(cfg.LogLevel),
	})
}

// Must creates a logger and panics on error
func Must(cfg *config.Config) Logger {
	log, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return log
}

func parseLogLevel(level string) Level {
	switch level {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
