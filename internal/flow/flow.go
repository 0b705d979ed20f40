// Package flow walks the user from a station to a network to a credential
// and connects. Every run ends in exactly one Outcome; user mistakes are
// outcomes with a printed message, only backend failures are errors.
package flow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/shazow/iwconnect/internal/tui"
	"github.com/shazow/iwconnect/wifi"
)

// Outcome is how a run ended.
type Outcome int

const (
	Connected Outcome = iota
	NoStations
	NoNetworks
	InvalidStation
	InvalidNetwork
	UnrecognizedResponse
	ConnectFailed
	Aborted
	Disconnected
	DisconnectFailed
)

func (o Outcome) String() string {
	switch o {
	case Connected:
		return "connected"
	case NoStations:
		return "no stations"
	case NoNetworks:
		return "no networks"
	case InvalidStation:
		return "invalid station"
	case InvalidNetwork:
		return "invalid network"
	case UnrecognizedResponse:
		return "unrecognized response"
	case ConnectFailed:
		return "connect failed"
	case Aborted:
		return "aborted"
	case Disconnected:
		return "disconnected"
	case DisconnectFailed:
		return "disconnect failed"
	}
	return "unknown"
}

// Prompter asks the user questions.
type Prompter interface {
	// Select shows the options with their indices and returns the raw answer.
	Select(label string, options []string) (string, error)
	// Input reads one line, hidden from the screen when secret is set.
	Input(label string, secret bool) (string, error)
}

// Flow runs one interactive connect or a disconnect.
type Flow struct {
	Backend  wifi.Backend
	Prompter Prompter
	Out      io.Writer
	Logger   *slog.Logger
	// Station is chosen without prompting when the backend lists it.
	Station string
	// OnConnected runs after a successful connect.
	OnConnected func(station string, network wifi.Network, passphrase *string) error
}

func (f *Flow) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

func (f *Flow) println(msg string) {
	fmt.Fprintln(f.Out, msg)
}

// choose parses a selection answer into an index of a list of n items.
func choose(answer string, n int) (int, bool) {
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// ask wraps a prompt, turning end of input into Aborted.
func ask(answer string, err error) (string, bool, error) {
	if errors.Is(err, io.EOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// Run takes the user through station, network and credential choice and
// connects.
func (f *Flow) Run(ctx context.Context) (Outcome, error) {
	styles := tui.NewStyles(f.Out)
	log := f.logger()

	stations, err := f.Backend.Stations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stations: %w", err)
	}
	if len(stations) == 0 {
		f.println("No stations found")
		return NoStations, nil
	}

	station, ok := f.preferred(stations)
	if !ok {
		options := make([]string, len(stations))
		for i, s := range stations {
			options[i] = styles.Station(s)
		}
		answer, ok, err := ask(f.Prompter.Select("Select your station", options))
		if err != nil {
			return 0, err
		}
		if !ok {
			return Aborted, nil
		}
		idx, valid := choose(answer, len(stations))
		if !valid {
			f.println(styles.Error("Not a station buddy"))
			return InvalidStation, nil
		}
		station = stations[idx]
	}
	log.Debug("station chosen", "station", station.Name, "scanning", station.Scanning)

	if !station.Scanning {
		f.println("Scanning")
		if err := f.Backend.Scan(ctx, station.Name); err != nil {
			return 0, fmt.Errorf("failed to scan on %s: %w", station.Name, err)
		}
	}

	networks, err := f.Backend.Networks(ctx, station.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to list networks on %s: %w", station.Name, err)
	}
	if len(networks) == 0 {
		f.println("No networks found")
		return NoNetworks, nil
	}

	options := make([]string, len(networks))
	for i, n := range networks {
		options[i] = styles.Network(n)
	}
	answer, ok, err := ask(f.Prompter.Select("Select your network", options))
	if err != nil {
		return 0, err
	}
	if !ok {
		return Aborted, nil
	}
	idx, valid := choose(answer, len(networks))
	if !valid {
		f.println(styles.Error("Not a network buddy"))
		return InvalidNetwork, nil
	}
	network := networks[idx]
	f.println("You selected: " + network.SSID)

	answer, ok, err = ask(f.Prompter.Input("Is there a password? Y/n", false))
	if err != nil {
		return 0, err
	}
	if !ok {
		return Aborted, nil
	}

	var passphrase *string
	switch answer {
	case "", "y", "Y":
		secret, ok, err := ask(f.Prompter.Input("Password", true))
		if err != nil {
			return 0, err
		}
		if !ok {
			return Aborted, nil
		}
		passphrase = &secret
	case "n", "N":
	default:
		f.println(styles.Error("Unrecognized response: " + answer))
		return UnrecognizedResponse, nil
	}

	log.Info("connecting", "station", station.Name, "ssid", network.SSID, "passphrase", passphrase != nil)
	err = f.Backend.Connect(ctx, station.Name, network.SSID, passphrase)
	if errors.Is(err, wifi.ErrOperationFailed) {
		f.println(styles.Error(fmt.Sprintf("Failed to connect to %s: %v", network.SSID, err)))
		return ConnectFailed, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to connect to %s: %w", network.SSID, err)
	}
	f.println(styles.Success("Connected to " + network.SSID))

	if f.OnConnected != nil {
		if err := f.OnConnected(station.Name, network, passphrase); err != nil {
			log.Warn("post-connect hook failed", "err", err)
		}
	}
	return Connected, nil
}

// preferred picks a station without asking: the configured one when it is
// listed, else the only one.
func (f *Flow) preferred(stations []wifi.Station) (wifi.Station, bool) {
	if f.Station != "" {
		for _, s := range stations {
			if s.Name == f.Station {
				return s, true
			}
		}
		f.logger().Warn("configured station not found", "station", f.Station)
	}
	if len(stations) == 1 {
		return stations[0], true
	}
	return wifi.Station{}, false
}

// Disconnect drops the connection of the configured station, or the first
// one listed, without prompting.
func (f *Flow) Disconnect(ctx context.Context) (Outcome, error) {
	styles := tui.NewStyles(f.Out)

	stations, err := f.Backend.Stations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list stations: %w", err)
	}
	if len(stations) == 0 {
		f.println("No stations found")
		return NoStations, nil
	}

	station := stations[0]
	if s, ok := f.preferred(stations); ok {
		station = s
	}

	err = f.Backend.Disconnect(ctx, station.Name)
	if errors.Is(err, wifi.ErrOperationFailed) {
		f.println(styles.Error(fmt.Sprintf("Failed to disconnect %s: %v", station.Name, err)))
		return DisconnectFailed, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to disconnect %s: %w", station.Name, err)
	}
	f.println(styles.Success("Disconnected " + station.Name))
	return Disconnected, nil
}
