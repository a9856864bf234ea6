package main

import (
	"log"

	"go.uber.org/zap"

	"crypto_kiosk/config"
	"crypto_kiosk/logger"
	"crypto_kiosk/ui"
)

func main() {
	cfg, cfgErr := config.Load()

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfgErr != nil {
		zapLogger.Warn("Config file ignored, using defaults", zap.String("path", config.FilePath()), zap.Error(cfgErr))
	}

	zapLogger.Info("Configuration loaded",
		zap.String("path", config.FilePath()),
		zap.Duration("refresh", cfg.RefreshInterval),
		zap.Int("tokens", len(cfg.Tokens)))

	ui.RunDashboard(cfg, zapLogger)
}
