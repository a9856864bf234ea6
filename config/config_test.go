package config

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}

	if cfg.RefreshInterval != DefaultRefresh {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, DefaultRefresh)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if len(cfg.Tokens) != 5 || cfg.Tokens[0].Symbol != "btc" {
		t.Errorf("Tokens = %+v, want default row starting with btc", cfg.Tokens)
	}
	if cfg.WiFi.SupplicantPath != DefaultSupplicantPath {
		t.Errorf("SupplicantPath = %q", cfg.WiFi.SupplicantPath)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
refresh_interval: 45s
quote_currency: busd
tokens:
  - name: Dogecoin
    symbol: doge
  - symbol: xrp
  - name: Broken
wifi:
  interface: wlan1
  country: DE
display:
  fullscreen: true
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.RefreshInterval != 45*time.Second {
		t.Errorf("RefreshInterval = %v, want 45s", cfg.RefreshInterval)
	}
	if cfg.QuoteCurrency != "BUSD" {
		t.Errorf("QuoteCurrency = %q, want BUSD", cfg.QuoteCurrency)
	}
	want := []Token{{Name: "Dogecoin", Symbol: "doge"}, {Name: "XRP", Symbol: "xrp"}}
	if len(cfg.Tokens) != len(want) {
		t.Fatalf("Tokens = %+v, want %+v", cfg.Tokens, want)
	}
	for i := range want {
		if cfg.Tokens[i] != want[i] {
			t.Errorf("Tokens[%d] = %+v, want %+v", i, cfg.Tokens[i], want[i])
		}
	}
	if cfg.WiFi.Interface != "wlan1" || cfg.WiFi.Country != "DE" {
		t.Errorf("WiFi = %+v", cfg.WiFi)
	}
	if cfg.WiFi.SupplicantPath != DefaultSupplicantPath {
		t.Errorf("SupplicantPath = %q, want default kept", cfg.WiFi.SupplicantPath)
	}
	if cfg.Display.Fullscreen == nil || !*cfg.Display.Fullscreen {
		t.Errorf("Fullscreen = %v, want true", cfg.Display.Fullscreen)
	}
}

func TestRefreshBelowMinimumResets(t *testing.T) {
	cfg, _ := LoadFrom(writeConfig(t, "refresh_interval: 5s\n"))
	if cfg.RefreshInterval != DefaultRefresh {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, DefaultRefresh)
	}
}

func TestBrokenFileGivesDefaults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax error", "tokens: [this is: not valid"},
		{"type error after valid fields", "refresh_interval: 300s\nwifi:\n  supplicant_path: /tmp/x.conf\ntokens: notalist\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(writeConfig(t, tt.body))
			if err == nil {
				t.Error("LoadFrom returned no error for a broken file")
			}
			if cfg == nil {
				t.Fatal("LoadFrom returned nil config")
			}
			if len(cfg.Tokens) != len(DefaultTokens()) {
				t.Errorf("Tokens = %+v, want defaults", cfg.Tokens)
			}
			if cfg.RefreshInterval != DefaultRefresh {
				t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, DefaultRefresh)
			}
			if cfg.WiFi.SupplicantPath != DefaultSupplicantPath {
				t.Errorf("SupplicantPath = %q, want %q", cfg.WiFi.SupplicantPath, DefaultSupplicantPath)
			}
		})
	}
}

func TestFilePathFollowsSudoUser(t *testing.T) {
	home := t.TempDir()
	orig := lookupUser
	lookupUser = func(name string) (*user.User, error) {
		if name != "kiosk" {
			t.Errorf("lookup %q, want kiosk", name)
		}
		return &user.User{Username: name, HomeDir: home}, nil
	}
	t.Cleanup(func() { lookupUser = orig })
	t.Setenv("SUDO_USER", "kiosk")

	want := filepath.Join(home, ".config", "crypto-kiosk", "config.yaml")
	if got := FilePath(); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestTokenLabel(t *testing.T) {
	if got := (Token{Name: "Bitcoin", Symbol: "btc"}).Label(); got != "Bitcoin (BTC)" {
		t.Errorf("Label() = %q, want %q", got, "Bitcoin (BTC)")
	}
}

func TestNetworkArgv(t *testing.T) {
	cfg := Default()
	cfg.NetworkCommand = []string{"/opt/kiosk/wifimanager"}

	if got := cfg.NetworkArgv(false); len(got) != 1 || got[0] != "/opt/kiosk/wifimanager" {
		t.Errorf("NetworkArgv(false) = %v", got)
	}
	got := cfg.NetworkArgv(true)
	if len(got) != 2 || got[0] != "sudo" || got[1] != "/opt/kiosk/wifimanager" {
		t.Errorf("NetworkArgv(true) = %v", got)
	}
	if len(cfg.NetworkCommand) != 1 {
		t.Errorf("NetworkArgv mutated config: %v", cfg.NetworkCommand)
	}

	cfg.NetworkCommand = nil
	if got := cfg.NetworkArgv(false); filepath.Base(got[0]) != NetworkBinary {
		t.Errorf("default argv = %v, want %s binary", got, NetworkBinary)
	}
}
