package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// launcher starts the network screen as a separate process. Nothing is
// passed to it and nothing comes back; the dashboard notices it is done when
// its own window is focused again.
type launcher struct {
	argv   []string
	logger *zap.Logger
}

func newLauncher(argv []string, logger *zap.Logger) *launcher {
	return &launcher{argv: argv, logger: logger.Named("launcher")}
}

func (l *launcher) launch() error {
	if len(l.argv) == 0 {
		return errors.New("no network screen command configured")
	}

	cmd := exec.Command(l.argv[0], l.argv[1:]...)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", l.argv[0], err)
	}
	l.logger.Info("Network screen started", zap.Strings("argv", l.argv), zap.Int("pid", cmd.Process.Pid))

	// Reap the child so it does not linger as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Warn("Network screen exited", zap.Error(err))
			return
		}
		l.logger.Info("Network screen exited")
	}()
	return nil
}
