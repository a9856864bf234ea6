// Package system holds small host probes shared by both screens.
package system

import (
	"bufio"
	"os"
	"strings"
)

const CPUInfoPath = "/proc/cpuinfo"

// IsRaspberryPi reports whether the cpuinfo file at path names a Raspberry Pi.
func IsRaspberryPi(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.Contains(sc.Text(), "Raspberry Pi") {
			return true
		}
	}
	return false
}

// EnsureRuntimeDir points XDG_RUNTIME_DIR at dir when it is unset, creating
// the directory. It returns the directory in effect.
func EnsureRuntimeDir(dir string) (string, error) {
	if cur := os.Getenv("XDG_RUNTIME_DIR"); cur != "" {
		return cur, nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, os.Setenv("XDG_RUNTIME_DIR", dir)
}
