package iwctl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shazow/iwconnect/wifi"
)

func TestOutputVerifier(t *testing.T) {
	ctx := context.Background()
	req := Request{Op: OpConnect, Station: "wlan0", SSID: "HomeNet"}

	assert.NoError(t, OutputVerifier{}.Verify(ctx, req, Result{Stdout: []byte("anything")}))
	// Output is all it looks at, the exit code is ignored.
	assert.NoError(t, OutputVerifier{}.Verify(ctx, req, Result{Stdout: []byte("Operation failed"), ExitCode: 1}))

	err := OutputVerifier{}.Verify(ctx, req, Result{})
	assert.ErrorIs(t, err, wifi.ErrOperationFailed)
	assert.EqualError(t, err, "connect on wlan0: no output: operation failed")
}

func TestOutputVerifier_Disconnect(t *testing.T) {
	ctx := context.Background()
	req := Request{Op: OpDisconnect, Station: "wlan0"}

	// A clean disconnect prints nothing.
	assert.NoError(t, OutputVerifier{}.Verify(ctx, req, Result{}))

	err := OutputVerifier{}.Verify(ctx, req, Result{ExitCode: 1, Stderr: []byte("Not connected\n")})
	assert.ErrorIs(t, err, wifi.ErrOperationFailed)
	assert.EqualError(t, err, "disconnect on wlan0: Not connected: operation failed")
}

func TestExitStatusVerifier(t *testing.T) {
	ctx := context.Background()
	req := Request{Op: OpDisconnect, Station: "wlan0"}

	assert.NoError(t, ExitStatusVerifier{}.Verify(ctx, req, Result{}))

	err := ExitStatusVerifier{}.Verify(ctx, req, Result{ExitCode: 1, Stderr: []byte("Not connected\n")})
	assert.ErrorIs(t, err, wifi.ErrOperationFailed)
	assert.EqualError(t, err, "disconnect on wlan0: Not connected: operation failed")

	err = ExitStatusVerifier{}.Verify(ctx, req, Result{ExitCode: 3})
	assert.EqualError(t, err, "disconnect on wlan0: exit status 3: operation failed")
}
