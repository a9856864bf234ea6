package system

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsRaspberryPi(t *testing.T) {
	dir := t.TempDir()
	pi := filepath.Join(dir, "pi")
	pc := filepath.Join(dir, "pc")
	os.WriteFile(pi, []byte("processor\t: 0\nHardware\t: BCM2835\nModel\t\t: Raspberry Pi 4 Model B Rev 1.4\n"), 0o644)
	os.WriteFile(pc, []byte("processor\t: 0\nmodel name\t: AMD Ryzen 7\n"), 0o644)

	if !IsRaspberryPi(pi) {
		t.Error("IsRaspberryPi(pi) = false")
	}
	if IsRaspberryPi(pc) {
		t.Error("IsRaspberryPi(pc) = true")
	}
	if IsRaspberryPi(filepath.Join(dir, "missing")) {
		t.Error("IsRaspberryPi(missing) = true")
	}
}

func TestEnsureRuntimeDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime-root")

	t.Setenv("XDG_RUNTIME_DIR", "")
	got, err := EnsureRuntimeDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != dir || os.Getenv("XDG_RUNTIME_DIR") != dir {
		t.Errorf("runtime dir = %q, env = %q, want %q", got, os.Getenv("XDG_RUNTIME_DIR"), dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("runtime dir not created: %v", err)
	}

	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	got, err = EnsureRuntimeDir(dir)
	if err != nil || got != "/run/user/1000" {
		t.Errorf("EnsureRuntimeDir() = %q, %v; want existing value kept", got, err)
	}
}
