// Package nl80211 looks up kernel details for wireless interfaces, to
// complement what iwctl prints.
package nl80211

import (
	"fmt"
	"net"

	mdwifi "github.com/mdlayher/wifi"
	"github.com/shazow/iwconnect/wifi"
)

// Info is what the kernel knows about a wireless interface.
type Info struct {
	Name         string
	HardwareAddr net.HardwareAddr
	// Frequency is in MHz, 0 when the interface is not associated.
	Frequency int
}

// Interfaces returns the kernel's wireless interfaces keyed by name.
func Interfaces() (map[string]Info, error) {
	c, err := mdwifi.New()
	if err != nil {
		return nil, fmt.Errorf("failed to open nl80211: %w: %w", wifi.ErrNotAvailable, err)
	}
	defer c.Close()

	ifis, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list wireless interfaces: %w", err)
	}
	return collect(ifis), nil
}

func collect(ifis []*mdwifi.Interface) map[string]Info {
	infos := make(map[string]Info, len(ifis))
	for _, ifi := range ifis {
		// P2P devices and the like have no netdev name.
		if ifi.Name == "" {
			continue
		}
		infos[ifi.Name] = Info{
			Name:         ifi.Name,
			HardwareAddr: ifi.HardwareAddr,
			Frequency:    ifi.Frequency,
		}
	}
	return infos
}
