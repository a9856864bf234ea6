package wifi

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
)

const supplicantTemplate = `ctrl_interface=%s
update_config=1
country=%s

network={
	ssid=%s
%s}
`

// Supplicant describes the wpa_supplicant configuration file the kiosk owns.
type Supplicant struct {
	Path          string
	CtrlInterface string
	Country       string
}

// Render returns the full file contents holding c as the only network.
func (s Supplicant) Render(c Credential) []byte {
	auth := "\tkey_mgmt=NONE\n"
	if c.Password != "" {
		auth = "\tpsk=" + quote(c.Password) + "\n"
	}
	return []byte(fmt.Sprintf(supplicantTemplate, s.CtrlInterface, s.Country, ssidValue(c.SSID), auth))
}

// Write overwrites the configuration file with c, discarding whatever was
// there before.
func (s Supplicant) Write(c Credential) error {
	if c.SSID == "" {
		return fmt.Errorf("empty ssid")
	}
	if err := os.WriteFile(s.Path, s.Render(c), 0o600); err != nil {
		return fmt.Errorf("%s: %w", s.Path, err)
	}
	return nil
}

// Reconfigurer reloads the supplicant configuration.
type Reconfigurer interface {
	Reconfigure(ctx context.Context) error
}

// Persist writes c to the supplicant file and asks the OS to reload it.
func Persist(ctx context.Context, s Supplicant, r Reconfigurer, c Credential) error {
	if err := s.Write(c); err != nil {
		return err
	}
	if err := r.Reconfigure(ctx); err != nil {
		return fmt.Errorf("reconfigure: %w", err)
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}

// ssidValue quotes the SSID, or hex encodes it when it would not survive
// quoting.
func ssidValue(ssid string) string {
	for i := 0; i < len(ssid); i++ {
		if b := ssid[i]; b < 0x20 || b > 0x7e || b == '"' || b == '\\' {
			return hex.EncodeToString([]byte(ssid))
		}
	}
	return quote(ssid)
}
