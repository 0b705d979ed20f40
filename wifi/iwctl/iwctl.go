// Package iwctl drives iwd through its iwctl command line client and scrapes
// the tables it prints.
package iwctl

import (
	"context"
	"log/slog"

	"github.com/shazow/iwconnect/wifi"
)

// Backend implements the wifi.Backend interface on top of iwctl.
type Backend struct {
	Gateway  *Gateway
	Verifier Verifier
	Logger   *slog.Logger
}

// New creates a new iwctl.Backend. A nil verifier checks exit status.
func New(path string, verifier Verifier, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	if verifier == nil {
		verifier = ExitStatusVerifier{}
	}
	return &Backend{
		Gateway:  NewGateway(path, logger),
		Verifier: verifier,
		Logger:   logger,
	}
}

func (b *Backend) warn(table string, warnings []Warning) {
	for _, w := range warnings {
		b.Logger.Warn("unexpected iwctl output", "table", table, "line", w.Line, "reason", w.Reason)
	}
}

// Stations lists the wireless stations.
func (b *Backend) Stations(ctx context.Context) ([]wifi.Station, error) {
	out, err := b.Gateway.ListStations(ctx)
	if err != nil {
		return nil, err
	}
	stations, warnings := ParseStations(out)
	b.warn("stations", warnings)
	return stations, nil
}

// Scan requests a scan on the station.
func (b *Backend) Scan(ctx context.Context, station string) error {
	return b.Gateway.Scan(ctx, station)
}

// Networks lists the networks visible to the station.
func (b *Backend) Networks(ctx context.Context, station string) ([]wifi.Network, error) {
	out, err := b.Gateway.ListNetworks(ctx, station)
	if err != nil {
		return nil, err
	}
	networks, warnings := ParseNetworks(out)
	b.warn("networks", warnings)
	return networks, nil
}

// Connect joins ssid and checks the result with the Verifier.
func (b *Backend) Connect(ctx context.Context, station, ssid string, passphrase *string) error {
	res, err := b.Gateway.Connect(ctx, station, ssid, passphrase)
	if err != nil {
		return err
	}
	return b.Verifier.Verify(ctx, Request{Op: OpConnect, Station: station, SSID: ssid}, res)
}

// Disconnect drops the station's connection and checks the result with the
// Verifier.
func (b *Backend) Disconnect(ctx context.Context, station string) error {
	res, err := b.Gateway.Disconnect(ctx, station)
	if err != nil {
		return err
	}
	return b.Verifier.Verify(ctx, Request{Op: OpDisconnect, Station: station}, res)
}
