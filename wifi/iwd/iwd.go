// Package iwd checks the outcome of iwctl commands against iwd's D-Bus API.
package iwd

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/shazow/iwconnect/wifi"
	"github.com/shazow/iwconnect/wifi/iwctl"
)

const connectionTimeout = 30 * time.Second
const pollInterval = 500 * time.Millisecond

// IWD constants
const (
	iwdDest         = "net.connman.iwd"
	iwdPath         = "/"
	iwdDeviceIface  = "net.connman.iwd.Device"
	iwdNetworkIface = "net.connman.iwd.Network"
	iwdStationIface = "net.connman.iwd.Station"

	objectManagerIface = "org.freedesktop.DBus.ObjectManager"
)

// Station states reported by iwd.
const (
	StateConnected    = "connected"
	StateDisconnected = "disconnected"
)

type managedObjects = map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// Status is the D-Bus view of one station.
type Status struct {
	State string
	// Network is the SSID of the connected network, if any.
	Network string
}

// StatusReader looks up the status of a station by interface name.
type StatusReader interface {
	Status(station string) (Status, error)
}

// busReader reads station status from the system bus.
type busReader struct {
	conn *dbus.Conn
}

func (r busReader) Status(station string) (Status, error) {
	var objects managedObjects
	obj := r.conn.Object(iwdDest, iwdPath)
	if err := obj.Call(objectManagerIface+".GetManagedObjects", 0).Store(&objects); err != nil {
		return Status{}, fmt.Errorf("failed to list iwd objects: %w", err)
	}
	return findStatus(objects, station)
}

func stringProp(props map[string]dbus.Variant, name string) string {
	v, ok := props[name]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

// findStatus picks the station named station out of iwd's object tree.
func findStatus(objects managedObjects, station string) (Status, error) {
	for _, ifaces := range objects {
		device, ok := ifaces[iwdDeviceIface]
		if !ok || stringProp(device, "Name") != station {
			continue
		}
		props, ok := ifaces[iwdStationIface]
		if !ok {
			return Status{}, fmt.Errorf("%s is not in station mode: %w", station, wifi.ErrNotSupported)
		}
		status := Status{State: stringProp(props, "State")}
		if v, ok := props["ConnectedNetwork"]; ok {
			if path, ok := v.Value().(dbus.ObjectPath); ok {
				status.Network = stringProp(objects[path][iwdNetworkIface], "Name")
			}
		}
		return status, nil
	}
	return Status{}, fmt.Errorf("station %s: %w", station, wifi.ErrNotFound)
}

// StateVerifier waits for iwd to report the state a command asked for.
type StateVerifier struct {
	Reader   StatusReader
	Timeout  time.Duration
	Interval time.Duration
}

// New creates a StateVerifier on the system bus.
func New() (*StateVerifier, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w: %w", wifi.ErrNotAvailable, err)
	}
	return &StateVerifier{
		Reader:   busReader{conn: conn},
		Timeout:  connectionTimeout,
		Interval: pollInterval,
	}, nil
}

func reached(req iwctl.Request, s Status) bool {
	if req.Op == iwctl.OpDisconnect {
		return s.State == StateDisconnected
	}
	return s.State == StateConnected && s.Network == req.SSID
}

// Verify polls the station until it reaches the requested state.
func (v *StateVerifier) Verify(ctx context.Context, req iwctl.Request, res iwctl.Result) error {
	// iwctl already reported a failure, there is nothing to wait for.
	if err := (iwctl.ExitStatusVerifier{}).Verify(ctx, req, res); err != nil {
		return err
	}

	timeout := time.After(v.Timeout)
	ticker := time.NewTicker(v.Interval)
	defer ticker.Stop()

	var last Status
	for {
		status, err := v.Reader.Status(req.Station)
		if err != nil {
			return err
		}
		if reached(req, status) {
			return nil
		}
		last = status

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("%s on %s: station is %q after %s: %w", req.Op, req.Station, last.State, v.Timeout, wifi.ErrOperationFailed)
		case <-ticker.C:
		}
	}
}
