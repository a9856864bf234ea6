package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultRefresh = 60 * time.Second
const MinRefresh = 30 * time.Second

const (
	DefaultAPIURL         = "https://api.binance.com/api/v3/ticker/24hr"
	DefaultQuoteCurrency  = "USDT"
	DefaultRequestTimeout = 10 * time.Second
	DefaultWarmup         = time.Second

	DefaultSupplicantPath = "/etc/wpa_supplicant/wpa_supplicant.conf"
	DefaultCtrlInterface  = "DIR=/var/run/wpa_supplicant GROUP=netdev"
	DefaultCountry        = "ES"
	DefaultRuntimeDir     = "/tmp/runtime-root"

	// NetworkBinary is the name of the network screen executable, looked up
	// next to the dashboard executable.
	NetworkBinary = "wifimanager"
)

// Token is one entry of the dashboard's button row.
type Token struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Label renders "Bitcoin (BTC)".
func (t Token) Label() string {
	return t.Name + " (" + strings.ToUpper(t.Symbol) + ")"
}

type Display struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	// Fullscreen left unset means fullscreen on a Raspberry Pi only.
	Fullscreen *bool `yaml:"fullscreen"`
}

type WiFi struct {
	Driver         string `yaml:"driver"`
	Interface      string `yaml:"interface"`
	SupplicantPath string `yaml:"supplicant_path"`
	CtrlInterface  string `yaml:"ctrl_interface"`
	Country        string `yaml:"country"`
	RuntimeDir     string `yaml:"runtime_dir"`
}

type Config struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	WarmupRefresh   time.Duration `yaml:"warmup_refresh"`

	APIURL         string        `yaml:"api_url"`
	QuoteCurrency  string        `yaml:"quote_currency"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	Tokens         []Token  `yaml:"tokens"`
	AssetsDir      string   `yaml:"assets_dir"`
	NetworkCommand []string `yaml:"network_command"`
	LogLevel       string   `yaml:"log_level"`

	Display Display `yaml:"display"`
	WiFi    WiFi    `yaml:"wifi"`
}

// DefaultTokens is the button row shipped with the kiosk.
func DefaultTokens() []Token {
	return []Token{
		{Name: "Bitcoin", Symbol: "btc"},
		{Name: "Ethereum", Symbol: "eth"},
		{Name: "Cardano", Symbol: "ada"},
		{Name: "Binance", Symbol: "bnb"},
		{Name: "Solana", Symbol: "sol"},
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// lookupUser is replaced in tests.
var lookupUser = user.Lookup

func appConfigDir() string {
	// Under sudo the network screen must read the invoking user's file, not root's.
	if name := os.Getenv("SUDO_USER"); name != "" {
		if u, err := lookupUser(name); err == nil && u.HomeDir != "" {
			return filepath.Join(u.HomeDir, ".config", "crypto-kiosk")
		}
	}
	if p, err := os.UserConfigDir(); err == nil {
		return filepath.Join(p, "crypto-kiosk")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".crypto-kiosk")
}

func FilePath() string {
	return filepath.Join(appConfigDir(), "config.yaml")
}

func Default() *Config {
	return &Config{
		RefreshInterval: DefaultRefresh,
		WarmupRefresh:   DefaultWarmup,
		APIURL:          DefaultAPIURL,
		QuoteCurrency:   DefaultQuoteCurrency,
		RequestTimeout:  DefaultRequestTimeout,
		Tokens:          DefaultTokens(),
		AssetsDir:       filepath.Join(executableDir(), "assets"),
		LogLevel:        "info",
		Display: Display{
			Width:  800,
			Height: 480,
		},
		WiFi: WiFi{
			Driver:         "wpa_cli",
			SupplicantPath: DefaultSupplicantPath,
			CtrlInterface:  DefaultCtrlInterface,
			Country:        DefaultCountry,
			RuntimeDir:     DefaultRuntimeDir,
		},
	}
}

func Load() (*Config, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads the YAML file at path over the defaults. A missing file
// yields the defaults silently. An unreadable or unparseable file yields the
// defaults together with the error, so none of its fields take effect.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = nil
	case err != nil:
		err = fmt.Errorf("read config: %w", err)
	default:
		parsed := Default()
		if uerr := yaml.Unmarshal(data, parsed); uerr != nil {
			err = fmt.Errorf("parse config %s: %w", path, uerr)
		} else {
			cfg = parsed
		}
	}

	cfg.normalize()
	return cfg, err
}

func (c *Config) normalize() {
	d := Default()

	if c.RefreshInterval < MinRefresh {
		c.RefreshInterval = DefaultRefresh
	}
	if c.WarmupRefresh < 0 {
		c.WarmupRefresh = 0
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.APIURL == "" {
		c.APIURL = d.APIURL
	}
	if c.QuoteCurrency == "" {
		c.QuoteCurrency = d.QuoteCurrency
	}
	c.QuoteCurrency = strings.ToUpper(c.QuoteCurrency)

	tokens := c.Tokens[:0]
	for _, t := range c.Tokens {
		if t.Symbol == "" {
			continue
		}
		if t.Name == "" {
			t.Name = strings.ToUpper(t.Symbol)
		}
		tokens = append(tokens, t)
	}
	c.Tokens = tokens
	if len(c.Tokens) == 0 {
		c.Tokens = d.Tokens
	}

	if c.AssetsDir == "" {
		c.AssetsDir = d.AssetsDir
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		c.Display.Width, c.Display.Height = d.Display.Width, d.Display.Height
	}
	if c.WiFi.Driver == "" {
		c.WiFi.Driver = d.WiFi.Driver
	}
	if c.WiFi.SupplicantPath == "" {
		c.WiFi.SupplicantPath = d.WiFi.SupplicantPath
	}
	if c.WiFi.CtrlInterface == "" {
		c.WiFi.CtrlInterface = d.WiFi.CtrlInterface
	}
	if c.WiFi.Country == "" {
		c.WiFi.Country = d.WiFi.Country
	}
	if c.WiFi.RuntimeDir == "" {
		c.WiFi.RuntimeDir = d.WiFi.RuntimeDir
	}
}

// NetworkArgv returns the command line that starts the network screen.
// sudo is prepended when the screen must run privileged.
func (c *Config) NetworkArgv(privileged bool) []string {
	argv := c.NetworkCommand
	if len(argv) == 0 {
		argv = []string{filepath.Join(executableDir(), NetworkBinary)}
	}
	if privileged && argv[0] != "sudo" {
		argv = append([]string{"sudo"}, argv...)
	}
	return argv
}
