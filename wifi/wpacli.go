package wifi

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var ee *exec.ExitError
	if errors.As(err, &ee) && len(ee.Stderr) > 0 {
		return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
	}
	return out, err
}

var _ = WiFi(&WPAWorker{})

// WPAWorker implements WiFi by talking to wpa_supplicant through wpa_cli.
type WPAWorker struct {
	Interface string
	run       Runner
	logger    *zap.Logger
}

func NewWPAWorker(iface string, logger *zap.Logger) *WPAWorker {
	return NewWPAWorkerWithRunner(iface, execRunner, logger)
}

func NewWPAWorkerWithRunner(iface string, run Runner, logger *zap.Logger) *WPAWorker {
	return &WPAWorker{
		Interface: iface,
		run:       run,
		logger:    logger.Named("wpa_cli").With(zap.String("interface", iface)),
	}
}

func (w *WPAWorker) cli(ctx context.Context, args ...string) (string, error) {
	argv := append([]string{"-i", w.Interface}, args...)
	out, err := w.run(ctx, "wpa_cli", argv...)
	reply := strings.TrimSpace(string(out))
	if err != nil {
		return reply, fmt.Errorf("wpa_cli %s: %w", args[0], err)
	}
	if strings.HasPrefix(reply, "FAIL") {
		return reply, fmt.Errorf("wpa_cli %s: %s", args[0], reply)
	}
	return reply, nil
}

func (w *WPAWorker) Scan(ctx context.Context) ([]Network, error) {
	if _, err := w.cli(ctx, "scan"); err != nil {
		// A scan already in progress still leaves usable results.
		w.logger.Debug("Scan trigger failed", zap.Error(err))
	}
	out, err := w.cli(ctx, "scan_results")
	if err != nil {
		return nil, err
	}
	nets := parseScanResults(out)
	w.logger.Debug("Scan finished", zap.Int("networks", len(nets)))
	return nets, nil
}

// parseScanResults reads the tab separated table printed by
// "wpa_cli scan_results": bssid, frequency, signal, flags, ssid.
// Hidden networks are dropped and duplicate SSIDs keep their strongest
// signal. The result is ordered by signal, strongest first.
func parseScanResults(out string) []Network {
	best := make(map[string]Network)

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.SplitN(sc.Text(), "\t", 5)
		if len(fields) != 5 {
			continue
		}
		signal, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			continue
		}
		ssid := fields[4]
		if ssid == "" {
			continue
		}
		n := Network{SSID: ssid, Security: securityFromFlags(fields[3]), Signal: signal}
		if prev, ok := best[ssid]; !ok || n.Signal > prev.Signal {
			best[ssid] = n
		}
	}

	res := make([]Network, 0, len(best))
	for _, n := range best {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Signal != res[j].Signal {
			return res[i].Signal > res[j].Signal
		}
		return res[i].SSID < res[j].SSID
	})
	return res
}

func securityFromFlags(flags string) Security {
	switch {
	case strings.Contains(flags, "EAP"):
		return WpaEap
	case strings.Contains(flags, "PSK"), strings.Contains(flags, "SAE"):
		return WpaPsk
	case strings.Contains(flags, "WEP"):
		return NotSupported
	default:
		return Open
	}
}

// Connect replaces every configured network with c and selects it.
func (w *WPAWorker) Connect(ctx context.Context, c Credential) error {
	if c.SSID == "" {
		return fmt.Errorf("empty ssid")
	}
	if _, err := w.cli(ctx, "remove_network", "all"); err != nil {
		return err
	}
	id, err := w.cli(ctx, "add_network")
	if err != nil {
		return err
	}
	if _, err := strconv.Atoi(id); err != nil {
		return fmt.Errorf("wpa_cli add_network: unexpected reply %q", id)
	}

	settings := [][]string{{"ssid", ssidValue(c.SSID)}}
	if c.Password == "" {
		settings = append(settings, []string{"key_mgmt", "NONE"})
	} else {
		settings = append(settings, []string{"psk", quote(c.Password)})
	}
	for _, kv := range settings {
		if _, err := w.cli(ctx, "set_network", id, kv[0], kv[1]); err != nil {
			return err
		}
	}
	if _, err := w.cli(ctx, "select_network", id); err != nil {
		return err
	}
	w.logger.Info("Connection requested", zap.String("ssid", c.SSID), zap.String("network_id", id))
	return nil
}

func (w *WPAWorker) Status(ctx context.Context) (Status, error) {
	out, err := w.cli(ctx, "status")
	if err != nil {
		return Status{}, err
	}
	return parseStatus(out), nil
}

// parseStatus reads the key=value lines of "wpa_cli status".
func parseStatus(out string) Status {
	kv := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		k, v, ok := strings.Cut(sc.Text(), "=")
		if ok {
			kv[k] = v
		}
	}
	if kv["wpa_state"] != "COMPLETED" {
		return Status{}
	}
	return Status{Connected: true, SSID: kv["ssid"], IP: kv["ip_address"]}
}

// Reconfigure makes wpa_supplicant reload its configuration file.
func (w *WPAWorker) Reconfigure(ctx context.Context) error {
	_, err := w.cli(ctx, "reconfigure")
	return err
}
