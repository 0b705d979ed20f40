package wifi

import "context"

// SecurityType represents the security protocol of a network.
type SecurityType int

const (
	SecurityUnknown SecurityType = iota
	SecurityOpen
	SecurityWEP
	SecurityWPA
	SecurityEAP
)

func (s SecurityType) String() string {
	switch s {
	case SecurityOpen:
		return "open"
	case SecurityWEP:
		return "wep"
	case SecurityWPA:
		return "psk"
	case SecurityEAP:
		return "8021x"
	}
	return "unknown"
}

// ParseSecurityType maps the security column of iwctl to a SecurityType.
func ParseSecurityType(s string) SecurityType {
	switch s {
	case "open":
		return SecurityOpen
	case "wep":
		return SecurityWEP
	case "psk", "sae":
		return SecurityWPA
	case "8021x":
		return SecurityEAP
	}
	return SecurityUnknown
}

// MaxSignal is the number of signal bars iwctl draws.
const MaxSignal = 4

// Station is a wireless interface managed by iwd.
type Station struct {
	Name     string
	Scanning bool
	// State is the station state column, if one was present.
	State string
}

// Network is a visible network as reported for one station.
type Network struct {
	SSID     string
	Security SecurityType
	Signal   uint8 // 0-MaxSignal bars
	IsActive bool
}

// Strength returns the signal as a percentage.
func (n Network) Strength() uint8 {
	if n.Signal >= MaxSignal {
		return 100
	}
	return n.Signal * (100 / MaxSignal)
}

// IsSecure reports whether the network needs a credential.
func (n Network) IsSecure() bool {
	return n.Security != SecurityOpen && n.Security != SecurityUnknown
}

// Backend defines the operations the connect flow needs from the wireless
// daemon. Returned slices keep the daemon's ordering.
type Backend interface {
	// Stations lists the wireless stations.
	Stations(ctx context.Context) ([]Station, error)
	// Scan requests a scan on the station and returns without waiting for it.
	Scan(ctx context.Context, station string) error
	// Networks lists the networks visible to the station.
	Networks(ctx context.Context, station string) ([]Network, error)
	// Connect joins ssid. A nil passphrase connects without a credential.
	Connect(ctx context.Context, station, ssid string, passphrase *string) error
	// Disconnect drops the station's current connection.
	Disconnect(ctx context.Context, station string) error
}
