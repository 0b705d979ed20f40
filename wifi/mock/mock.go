package mock

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shazow/iwconnect/wifi"
)

var DefaultActionSleep = 500 * time.Millisecond

// ConnectCall records one call to Connect.
type ConnectCall struct {
	Station    string
	SSID       string
	Passphrase *string
}

// MockBackend is a mock implementation of the wifi.Backend interface for testing.
type MockBackend struct {
	StationList []wifi.Station
	NetworkList map[string][]wifi.Network
	// Secrets holds the passphrase each secured network accepts.
	Secrets map[string]string

	StationsError   error
	ScanError       error
	NetworksError   error
	ConnectError    error
	DisconnectError error

	Scans       []string
	Connects    []ConnectCall
	Disconnects []string

	// ActionSleep is a delay before every action, to better emulate a real-world backend for the frontend. Set to 0 during testing.
	ActionSleep time.Duration
}

// New creates a new mock.Backend with a couple of stations and a list of fun wifi networks.
func New() (wifi.Backend, error) {
	networks := []wifi.Network{
		{SSID: "HideYoKidsHideYoWiFi", Security: wifi.SecurityWPA, Signal: 4, IsActive: true},
		{SSID: "NeverGonnaGiveYouIP", Security: wifi.SecurityWEP, Signal: 3},
		{SSID: "Unencrypted_Honeypot", Security: wifi.SecurityOpen, Signal: 3},
		{SSID: "Dunder MiffLAN", Security: wifi.SecurityWPA, Signal: 2},
		{SSID: "Police Surveillance 2", Security: wifi.SecurityWPA, Signal: 2},
		{SSID: "I Believe Wi Can Fi", Security: wifi.SecurityEAP, Signal: 1},
		{SSID: "TacoBoutAGoodSignal", Security: wifi.SecurityWPA, Signal: 1},
	}
	return &MockBackend{
		StationList: []wifi.Station{
			{Name: "wlan0", State: "connected"},
			{Name: "wlan1", State: "disconnected", Scanning: true},
		},
		NetworkList: map[string][]wifi.Network{
			"wlan0": networks,
			"wlan1": append([]wifi.Network(nil), networks[1:]...),
		},
		Secrets: map[string]string{
			"HideYoKidsHideYoWiFi":  "hidden",
			"NeverGonnaGiveYouIP":   "rickroll",
			"Dunder MiffLAN":        "thatswhatshesaid",
			"Police Surveillance 2": "password",
			"I Believe Wi Can Fi":   "password",
			"TacoBoutAGoodSignal":   "tuesday",
		},
		ActionSleep: DefaultActionSleep,
	}, nil
}

func (m *MockBackend) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.ActionSleep):
		return nil
	}
}

func (m *MockBackend) findStation(name string) (int, error) {
	for i, s := range m.StationList {
		if s.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("station %s: %w", name, wifi.ErrNotFound)
}

// setActive marks ssid as the only active network of the station.
func (m *MockBackend) setActive(station, ssid string) {
	networks := m.NetworkList[station]
	for i := range networks {
		networks[i].IsActive = networks[i].SSID == ssid
	}
}

func (m *MockBackend) Stations(ctx context.Context) ([]wifi.Station, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if m.StationsError != nil {
		return nil, m.StationsError
	}
	stations := make([]wifi.Station, len(m.StationList))
	copy(stations, m.StationList)
	return stations, nil
}

func (m *MockBackend) Scan(ctx context.Context, station string) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	m.Scans = append(m.Scans, station)
	if m.ScanError != nil {
		return m.ScanError
	}
	i, err := m.findStation(station)
	if err != nil {
		return err
	}
	m.StationList[i].Scanning = true

	// For mock, we can re-randomize signal on each scan
	r := rand.New(rand.NewSource(time.Now().Unix()))
	networks := m.NetworkList[station]
	for j := range networks {
		networks[j].Signal = uint8(r.Intn(wifi.MaxSignal) + 1)
	}
	return nil
}

func (m *MockBackend) Networks(ctx context.Context, station string) ([]wifi.Network, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	if m.NetworksError != nil {
		return nil, m.NetworksError
	}
	if _, err := m.findStation(station); err != nil {
		return nil, err
	}
	networks := make([]wifi.Network, len(m.NetworkList[station]))
	copy(networks, m.NetworkList[station])
	return networks, nil
}

func (m *MockBackend) Connect(ctx context.Context, station, ssid string, passphrase *string) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	m.Connects = append(m.Connects, ConnectCall{Station: station, SSID: ssid, Passphrase: passphrase})
	if m.ConnectError != nil {
		return m.ConnectError
	}
	i, err := m.findStation(station)
	if err != nil {
		return err
	}

	found := false
	for _, n := range m.NetworkList[station] {
		if n.SSID == ssid {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("network %s: %w", ssid, wifi.ErrNotFound)
	}

	if secret, ok := m.Secrets[ssid]; ok {
		if passphrase == nil || *passphrase != secret {
			return fmt.Errorf("connect to %s: invalid passphrase: %w", ssid, wifi.ErrOperationFailed)
		}
	}

	m.setActive(station, ssid)
	m.StationList[i].State = "connected"
	return nil
}

func (m *MockBackend) Disconnect(ctx context.Context, station string) error {
	if err := m.sleep(ctx); err != nil {
		return err
	}
	m.Disconnects = append(m.Disconnects, station)
	if m.DisconnectError != nil {
		return m.DisconnectError
	}
	i, err := m.findStation(station)
	if err != nil {
		return err
	}
	m.setActive(station, "")
	m.StationList[i].State = "disconnected"
	return nil
}
