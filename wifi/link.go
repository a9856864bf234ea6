package wifi

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/vishvananda/netlink"
)

// DefaultInterface is used when no wireless link can be detected.
const DefaultInterface = "wlan0"

var sysClassNet = "/sys/class/net"

var errNoWireless = errors.New("no wireless interface found")

func interfaceIsWireless(name string) bool {
	_, err := os.Stat(filepath.Join(sysClassNet, name, "wireless"))
	return err == nil
}

// DetectInterface returns the first wireless link known to the kernel.
func DetectInterface() (string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return "", err
	}
	for _, l := range links {
		if name := l.Attrs().Name; interfaceIsWireless(name) {
			return name, nil
		}
	}
	return "", errNoWireless
}

// LinkUp brings the named link administratively up.
func LinkUp(name string) error {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return err
	}
	return netlink.LinkSetUp(l)
}

// IPv4 returns the first IPv4 address of the link, or "0.0.0.0".
func IPv4(name string) string {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return "0.0.0.0"
	}
	addrs, err := netlink.AddrList(l, netlink.FAMILY_V4)
	if err != nil || len(addrs) == 0 {
		return "0.0.0.0"
	}
	return addrs[0].IP.String()
}
