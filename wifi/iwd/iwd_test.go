package iwd

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shazow/iwconnect/wifi"
	"github.com/shazow/iwconnect/wifi/iwctl"
)

var _ iwctl.Verifier = (*StateVerifier)(nil)

func testObjects(state string) managedObjects {
	return managedObjects{
		"/net/connman/iwd/0/4": {
			iwdDeviceIface: {"Name": dbus.MakeVariant("wlan0")},
			iwdStationIface: {
				"State":            dbus.MakeVariant(state),
				"ConnectedNetwork": dbus.MakeVariant(dbus.ObjectPath("/net/connman/iwd/0/4/486f6d654e6574_psk")),
			},
		},
		"/net/connman/iwd/0/4/486f6d654e6574_psk": {
			iwdNetworkIface: {"Name": dbus.MakeVariant("HomeNet")},
		},
		"/net/connman/iwd/0/5": {
			iwdDeviceIface: {"Name": dbus.MakeVariant("wlan1")},
		},
	}
}

func TestFindStatus(t *testing.T) {
	status, err := findStatus(testObjects("connected"), "wlan0")
	require.NoError(t, err)
	assert.Equal(t, Status{State: "connected", Network: "HomeNet"}, status)

	_, err = findStatus(testObjects("connected"), "wlan1")
	assert.ErrorIs(t, err, wifi.ErrNotSupported)

	_, err = findStatus(testObjects("connected"), "wlan9")
	assert.ErrorIs(t, err, wifi.ErrNotFound)
}

// sequenceReader returns the given statuses in order, repeating the last.
type sequenceReader struct {
	statuses []Status
	calls    int
}

func (r *sequenceReader) Status(station string) (Status, error) {
	i := r.calls
	if i >= len(r.statuses) {
		i = len(r.statuses) - 1
	}
	r.calls++
	return r.statuses[i], nil
}

func TestStateVerifier_Connect(t *testing.T) {
	reader := &sequenceReader{statuses: []Status{
		{State: "connecting"},
		{State: "connected", Network: "HomeNet"},
	}}
	v := &StateVerifier{Reader: reader, Timeout: time.Second, Interval: time.Millisecond}

	err := v.Verify(context.Background(), iwctl.Request{Op: iwctl.OpConnect, Station: "wlan0", SSID: "HomeNet"}, iwctl.Result{})
	require.NoError(t, err)
	assert.Equal(t, 2, reader.calls)
}

func TestStateVerifier_Timeout(t *testing.T) {
	reader := &sequenceReader{statuses: []Status{{State: "connected", Network: "Elsewhere"}}}
	v := &StateVerifier{Reader: reader, Timeout: 20 * time.Millisecond, Interval: time.Millisecond}

	err := v.Verify(context.Background(), iwctl.Request{Op: iwctl.OpConnect, Station: "wlan0", SSID: "HomeNet"}, iwctl.Result{})
	assert.ErrorIs(t, err, wifi.ErrOperationFailed)
}

func TestStateVerifier_Disconnect(t *testing.T) {
	reader := &sequenceReader{statuses: []Status{{State: "disconnected"}}}
	v := &StateVerifier{Reader: reader, Timeout: time.Second, Interval: time.Millisecond}

	err := v.Verify(context.Background(), iwctl.Request{Op: iwctl.OpDisconnect, Station: "wlan0"}, iwctl.Result{})
	assert.NoError(t, err)
}

func TestStateVerifier_CommandFailed(t *testing.T) {
	reader := &sequenceReader{statuses: []Status{{State: "connected", Network: "HomeNet"}}}
	v := &StateVerifier{Reader: reader, Timeout: time.Second, Interval: time.Millisecond}

	err := v.Verify(context.Background(), iwctl.Request{Op: iwctl.OpConnect, Station: "wlan0", SSID: "HomeNet"}, iwctl.Result{ExitCode: 1})
	assert.ErrorIs(t, err, wifi.ErrOperationFailed)
	assert.Zero(t, reader.calls)
}
