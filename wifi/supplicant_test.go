package wifi

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSupplicant(t *testing.T) Supplicant {
	return Supplicant{
		Path:          filepath.Join(t.TempDir(), "wpa_supplicant.conf"),
		CtrlInterface: "DIR=/var/run/wpa_supplicant GROUP=netdev",
		Country:       "ES",
	}
}

func TestRender(t *testing.T) {
	s := testSupplicant(t)
	got := string(s.Render(Credential{SSID: "HomeNet", Password: "hunter22"}))
	want := `ctrl_interface=DIR=/var/run/wpa_supplicant GROUP=netdev
update_config=1
country=ES

network={
	ssid="HomeNet"
	psk="hunter22"
}
`
	if got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderOpenAndHex(t *testing.T) {
	s := testSupplicant(t)

	got := string(s.Render(Credential{SSID: "Café"}))
	if !strings.Contains(got, "\tssid=436166c3a9\n") {
		t.Errorf("non-ASCII ssid not hex encoded:\n%s", got)
	}
	if !strings.Contains(got, "\tkey_mgmt=NONE\n") || strings.Contains(got, "psk=") {
		t.Errorf("open network rendered with a psk:\n%s", got)
	}

	got = string(s.Render(Credential{SSID: `say "hi"`, Password: "12345678"}))
	if !strings.Contains(got, "\tssid=7361792022686922\n") {
		t.Errorf("quoted ssid not hex encoded:\n%s", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	s := testSupplicant(t)
	if err := os.WriteFile(s.Path, []byte("network={\n\tssid=\"Old\"\n}\n# a very long previous file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Write(Credential{SSID: "First", Password: "password1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(Credential{SSID: "Second", Password: "password2"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if got != string(s.Render(Credential{SSID: "Second", Password: "password2"})) {
		t.Errorf("file =\n%s", got)
	}
	if strings.Count(got, "network={") != 1 {
		t.Errorf("want exactly one network block:\n%s", got)
	}
	for _, stale := range []string{"Old", "First", "password1"} {
		if strings.Contains(got, stale) {
			t.Errorf("stale %q left in file", stale)
		}
	}
}

func TestWriteRejectsEmptySSID(t *testing.T) {
	s := testSupplicant(t)
	if err := s.Write(Credential{Password: "x"}); err == nil {
		t.Error("Write() = nil for empty ssid")
	}
	if _, err := os.Stat(s.Path); !os.IsNotExist(err) {
		t.Error("file created for empty ssid")
	}
}

type failingReconfigurer struct{ calls int }

func (f *failingReconfigurer) Reconfigure(context.Context) error {
	f.calls++
	return errors.New("no ctrl socket")
}

func TestPersist(t *testing.T) {
	s := testSupplicant(t)
	stub := NewStubWorker()

	if err := Persist(context.Background(), s, stub, Credential{SSID: "HomeNet", Password: "hunter22"}); err != nil {
		t.Fatal(err)
	}
	if stub.Reconfigures != 1 {
		t.Errorf("Reconfigures = %d, want 1", stub.Reconfigures)
	}

	bad := &failingReconfigurer{}
	if err := Persist(context.Background(), s, bad, Credential{SSID: "Other", Password: "hunter22"}); err == nil {
		t.Error("Persist() = nil with failing reconfigure")
	}
	if bad.calls != 1 {
		t.Errorf("reconfigure calls = %d", bad.calls)
	}

	s.Path = filepath.Join(s.Path, "not-a-dir", "file")
	bad.calls = 0
	if err := Persist(context.Background(), s, bad, Credential{SSID: "x"}); err == nil {
		t.Error("Persist() = nil with unwritable path")
	}
	if bad.calls != 0 {
		t.Error("reconfigure called after failed write")
	}
}
