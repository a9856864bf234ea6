package wifi

import (
	"context"
	"sync"
)

var _ = WiFi(&StubWorker{})

// StubWorker is an in-memory WiFi used on desktops without wpa_supplicant
// and in tests. Connect succeeds for every credential Accept approves (all
// of them when Accept is nil).
type StubWorker struct {
	mu sync.Mutex

	Networks []Network
	Current  Status
	Accept   func(Credential) bool

	Connects     []Credential
	Reconfigures int
}

func NewStubWorker(networks ...Network) *StubWorker {
	return &StubWorker{Networks: networks}
}

func (w *StubWorker) Scan(context.Context) ([]Network, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Network(nil), w.Networks...), nil
}

func (w *StubWorker) Connect(_ context.Context, c Credential) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Connects = append(w.Connects, c)
	if w.Accept == nil || w.Accept(c) {
		w.Current = Status{Connected: true, SSID: c.SSID, IP: "192.168.4.2"}
	} else {
		w.Current = Status{}
	}
	return nil
}

func (w *StubWorker) Status(context.Context) (Status, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Current, nil
}

func (w *StubWorker) Reconfigure(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Reconfigures++
	return nil
}

// ConnectCalls returns a copy of every credential passed to Connect.
func (w *StubWorker) ConnectCalls() []Credential {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Credential(nil), w.Connects...)
}

// SetStatus overrides the reported status.
func (w *StubWorker) SetStatus(s Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Current = s
}
