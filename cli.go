package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shazow/iwconnect/internal/config"
	"github.com/shazow/iwconnect/internal/flow"
	"github.com/shazow/iwconnect/internal/tui"
	"github.com/shazow/iwconnect/wifi"
	"github.com/shazow/iwconnect/wifi/nl80211"
)

// wirelessInterfaces is swapped out in tests.
var wirelessInterfaces = nl80211.Interfaces

func (a *app) flow() *flow.Flow {
	var prompter flow.Prompter = flow.NewLinePrompter(a.in, a.out)
	if a.cfg.UI == config.UITUI {
		prompter = tui.Prompter{In: a.in, Out: a.out}
	}
	f := &flow.Flow{
		Backend:  a.backend,
		Prompter: prompter,
		Out:      a.out,
		Logger:   a.logger,
		Station:  a.cfg.Station,
	}
	if a.qr {
		f.OnConnected = printQRCode(a.out)
	}
	return f
}

func runInteractive(ctx context.Context, a *app) error {
	outcome, err := a.flow().Run(ctx)
	if err != nil {
		return err
	}
	a.logger.Debug("flow finished", "outcome", outcome)
	return nil
}

func runDisconnect(ctx context.Context, a *app) error {
	outcome, err := a.flow().Disconnect(ctx)
	if err != nil {
		return err
	}
	a.logger.Debug("disconnect finished", "outcome", outcome)
	return nil
}

// printQRCode returns a hook that prints a code other devices can scan to
// join the same network.
func printQRCode(w io.Writer) func(string, wifi.Network, *string) error {
	return func(_ string, network wifi.Network, passphrase *string) error {
		var password string
		if passphrase != nil {
			password = *passphrase
		}
		code, err := GenerateWifiQRCode(network.SSID, password, network.Security, false)
		if err != nil {
			return fmt.Errorf("failed to generate qr code: %w", err)
		}
		fmt.Fprint(w, code)
		return nil
	}
}

type listedNetwork struct {
	SSID     string `json:"ssid"`
	Security string `json:"security"`
	Signal   uint8  `json:"signal"`
	Strength uint8  `json:"strength"`
	Active   bool   `json:"active"`
}

type listedStation struct {
	Name         string          `json:"name"`
	State        string          `json:"state,omitempty"`
	Scanning     bool            `json:"scanning"`
	HardwareAddr string          `json:"hardware_addr,omitempty"`
	Frequency    int             `json:"frequency,omitempty"`
	Networks     []listedNetwork `json:"networks"`
}

type listOptions struct {
	JSON bool
	Sort bool
}

// runList prints every station with the networks it currently sees. It does
// not trigger a scan.
func runList(ctx context.Context, w io.Writer, opts listOptions, backend wifi.Backend, logger *slog.Logger) error {
	stations, err := backend.Stations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stations: %w", err)
	}

	infos, err := wirelessInterfaces()
	if err != nil {
		logger.Debug("no kernel interface details", "err", err)
	}

	listed := make([]listedStation, 0, len(stations))
	networksOf := make([][]wifi.Network, 0, len(stations))
	for _, s := range stations {
		networks, err := backend.Networks(ctx, s.Name)
		if err != nil {
			return fmt.Errorf("failed to list networks on %s: %w", s.Name, err)
		}
		if opts.Sort {
			wifi.SortNetworks(networks)
		}
		ls := listedStation{
			Name:     s.Name,
			State:    s.State,
			Scanning: s.Scanning,
			Networks: make([]listedNetwork, 0, len(networks)),
		}
		if info, ok := infos[s.Name]; ok {
			if info.HardwareAddr != nil {
				ls.HardwareAddr = info.HardwareAddr.String()
			}
			ls.Frequency = info.Frequency
		}
		for _, n := range networks {
			ls.Networks = append(ls.Networks, listedNetwork{
				SSID:     n.SSID,
				Security: n.Security.String(),
				Signal:   n.Signal,
				Strength: n.Strength(),
				Active:   n.IsActive,
			})
		}
		listed = append(listed, ls)
		networksOf = append(networksOf, networks)
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listed)
	}

	styles := tui.NewStyles(w)
	for i, s := range stations {
		line := styles.Station(s)
		if ls := listed[i]; ls.HardwareAddr != "" {
			line += "  " + ls.HardwareAddr
			if ls.Frequency > 0 {
				line += fmt.Sprintf(" %d MHz", ls.Frequency)
			}
		}
		fmt.Fprintln(w, line)
		for _, n := range networksOf[i] {
			fmt.Fprintf(w, "\t%s\n", styles.Network(n))
		}
	}
	return nil
}
