package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"crypto_kiosk/wifi"
)

type networkState int

const (
	stateScanning networkState = iota
	stateReady
	stateSelecting
	stateConnecting
	stateConnected
	stateFailed
)

func (s networkState) String() string {
	return [...]string{"scanning", "ready", "selecting", "connecting", "connected", "failed"}[s]
}

const (
	msgSelectNetwork = "Please select a network from the list."
	msgNeedPassword  = "Please provide password."
)

// Status is polled at these offsets after a connection request.
var statusPolls = []time.Duration{time.Second, 5 * time.Second}

// rescanDelay is when the second scan runs after the screen opens; the
// first scan right after boot often comes back short.
const rescanDelay = 2 * time.Second

type networkView interface {
	showScanning()
	showNetworks(nets []wifi.Network, selected string)
	showStatus(s wifi.Status)
	alert(msg string)
}

// scheduler runs f once after d.
type scheduler func(d time.Duration, f func())

// networkManager drives the wireless adapter for the network screen.
// All methods may be called from any goroutine.
type networkManager struct {
	radio   wifi.WiFi
	persist func(context.Context, wifi.Credential) error
	addr    func() string
	after   scheduler
	view    networkView
	logger  *zap.Logger

	mu       sync.Mutex
	state    networkState
	networks []wifi.Network
	selected string
	// pending holds the credentials of the last attempt until a status poll
	// sees it succeed.
	pending *wifi.Credential
}

func (m *networkManager) start() {
	m.refresh()
	m.after(rescanDelay, m.refresh)
}

// refresh rescans, keeping the selection when the network is still visible,
// and then checks the connection. While an attempt is pending the state is
// left to the status polls.
func (m *networkManager) refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx := context.Background()
	connecting := m.pending != nil

	if !connecting {
		m.state = stateScanning
	}
	m.view.showScanning()

	nets, err := m.radio.Scan(ctx)
	if err != nil {
		m.logger.Warn("Scan failed", zap.Error(err))
		nets = nil
	}
	m.networks = nets
	if !m.visible(m.selected) {
		m.selected = ""
	}
	m.view.showNetworks(nets, m.selected)

	if connecting {
		return
	}
	m.state = stateReady
	if m.selected != "" {
		m.state = stateSelecting
	}
	m.checkLocked(ctx)
}

func (m *networkManager) visible(ssid string) bool {
	for _, n := range m.networks {
		if n.SSID == ssid {
			return true
		}
	}
	return false
}

func (m *networkManager) selectNetwork(ssid string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.visible(ssid) {
		return
	}
	m.selected = ssid
	m.state = stateSelecting
}

// submit starts a connection to the selected network. Nothing reaches the
// radio unless a network is selected and a password given.
func (m *networkManager) submit(password string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == "" {
		m.view.alert(msgSelectNetwork)
		return
	}
	if password == "" {
		m.view.alert(msgNeedPassword)
		return
	}

	cred := wifi.Credential{SSID: m.selected, Password: password}
	m.state = stateConnecting
	m.pending = &cred

	if err := m.radio.Connect(context.Background(), cred); err != nil {
		m.logger.Error("Connect failed", zap.String("ssid", cred.SSID), zap.Error(err))
		m.state = stateFailed
		m.pending = nil
		m.view.showStatus(wifi.Status{})
		return
	}

	m.view.alert(fmt.Sprintf("Attempting to connect to %s...", cred.SSID))
	for _, d := range statusPolls {
		m.after(d, m.checkConnection)
	}
}

func (m *networkManager) checkConnection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkLocked(context.Background())
}

func (m *networkManager) checkLocked(ctx context.Context) {
	st, err := m.radio.Status(ctx)
	if err != nil {
		m.logger.Warn("Status failed", zap.Error(err))
		st = wifi.Status{}
	}

	if !st.Connected {
		if m.state == stateConnecting {
			m.state = stateFailed
		}
		m.view.showStatus(st)
		return
	}

	if st.IP == "" && m.addr != nil {
		st.IP = m.addr()
	}
	m.view.showStatus(st)

	if m.pending == nil {
		m.state = stateConnected
		return
	}
	if st.SSID != "" && st.SSID != m.pending.SSID {
		// Still on the previous network; a later poll decides.
		m.logger.Debug("Connected to another network", zap.String("ssid", st.SSID), zap.String("pending", m.pending.SSID))
		return
	}

	m.state = stateConnected
	cred := *m.pending
	m.pending = nil
	if err := m.persist(ctx, cred); err != nil {
		m.logger.Error("Saving WiFi configuration failed", zap.String("ssid", cred.SSID), zap.Error(err))
		return
	}
	m.logger.Info("WiFi configuration saved", zap.String("ssid", cred.SSID))
}

func (m *networkManager) currentState() networkState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// statusText renders the status line and whether it shows a connection.
func statusText(s wifi.Status) (string, bool) {
	if !s.Connected {
		return "WIFI NOT CONNECTED", false
	}
	text := "WIFI CONNECTED TO " + s.SSID
	if s.IP != "" && s.IP != "0.0.0.0" {
		text += " (" + s.IP + ")"
	}
	return text, true
}
