// Package logger builds the zap logger shared by both kiosk screens.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at the given level ("debug", "info", ...).
// An unknown level falls back to info and is reported once.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Sampling = nil

	atom, levelErr := zap.ParseAtomicLevel(level)
	if levelErr != nil {
		atom = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = atom

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	if levelErr != nil {
		l.Warn("Invalid log level, defaulting to info", zap.String("input", level))
	}
	return l, nil
}
