// Package wifi wraps the OS wireless tooling: scanning, connecting, status
// polling and persisting the supplicant configuration.
package wifi

import "context"

type Security int

const (
	Open Security = iota
	WpaPsk
	WpaEap
	NotSupported
)

func (s Security) String() string {
	switch s {
	case Open:
		return "open"
	case WpaPsk:
		return "wpa-psk"
	case WpaEap:
		return "wpa-eap"
	default:
		return "unsupported"
	}
}

// Network is one entry of a scan.
type Network struct {
	SSID     string
	Security Security
	// Signal is the level reported by the driver, in dBm.
	Signal int
}

// Status is the association state of the interface.
type Status struct {
	Connected bool
	SSID      string
	IP        string
}

// Credential is what gets written to the supplicant configuration.
type Credential struct {
	SSID     string
	Password string
}

// WiFi is implemented by every wireless backend.
//
// Connect only hands the network to the OS; whether it worked is observed
// later through Status.
type WiFi interface {
	Scan(ctx context.Context) ([]Network, error)
	Connect(ctx context.Context, c Credential) error
	Status(ctx context.Context) (Status, error)
	Reconfigure(ctx context.Context) error
}
