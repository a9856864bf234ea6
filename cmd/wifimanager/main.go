// Command wifimanager is the kiosk's network screen. The dashboard starts it
// as a child process; it scans, connects and saves the chosen network.
package main

import (
	"log"

	"go.uber.org/zap"

	"crypto_kiosk/config"
	"crypto_kiosk/logger"
	"crypto_kiosk/system"
	"crypto_kiosk/ui"
	"crypto_kiosk/wifi"
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

	if dir, err := system.EnsureRuntimeDir(cfg.WiFi.RuntimeDir); err != nil {
		zapLogger.Warn("Cannot prepare runtime dir", zap.String("dir", cfg.WiFi.RuntimeDir), zap.Error(err))
	} else {
		zapLogger.Debug("Runtime dir", zap.String("dir", dir))
	}

	radio, iface := newRadio(cfg, zapLogger)
	ui.RunNetwork(cfg, radio, iface, zapLogger)
}

func newRadio(cfg *config.Config, l *zap.Logger) (wifi.WiFi, string) {
	if cfg.WiFi.Driver == "stub" {
		l.Warn("Using the stub WiFi driver; nothing will be connected")
		return wifi.NewStubWorker(
			wifi.Network{SSID: "KioskDemo", Security: wifi.WpaPsk, Signal: -42},
			wifi.Network{SSID: "CafeFree", Security: wifi.Open, Signal: -67},
		), "lo"
	}

	iface := cfg.WiFi.Interface
	if iface == "" {
		detected, err := wifi.DetectInterface()
		if err != nil {
			l.Warn("Wireless interface detection failed", zap.String("fallback", wifi.DefaultInterface), zap.Error(err))
			detected = wifi.DefaultInterface
		}
		iface = detected
	}
	if err := wifi.LinkUp(iface); err != nil {
		l.Warn("Cannot bring interface up", zap.String("interface", iface), zap.Error(err))
	}
	l.Info("Using wireless interface", zap.String("interface", iface))

	return wifi.NewWPAWorker(iface, l), iface
}
