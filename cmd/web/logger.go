package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a JSON production logger, or a console one when
// APP_ENV=development. LOG_LEVEL overrides the level.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if os.Getenv("APP_ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
	}

	if v := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))); v != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}
	cfg.DisableStacktrace = true

	return cfg.Build()
}
