package iwctl

import (
	"context"
	"fmt"

	"github.com/shazow/iwconnect/wifi"
)

// Op is a state-changing iwctl operation.
type Op int

const (
	OpConnect Op = iota
	OpDisconnect
)

func (o Op) String() string {
	if o == OpDisconnect {
		return "disconnect"
	}
	return "connect"
}

// Request identifies what a Verifier is checking.
type Request struct {
	Op      Op
	Station string
	// SSID is empty for OpDisconnect.
	SSID string
}

// Verifier decides whether a connect or disconnect took effect.
type Verifier interface {
	Verify(ctx context.Context, req Request, res Result) error
}

// OutputVerifier treats any output on stdout from a connect as success and
// silence as failure. It cannot tell apart diagnostics printed on failure.
// iwctl prints nothing for a disconnect, so disconnects are judged by exit
// status.
type OutputVerifier struct{}

func (OutputVerifier) Verify(ctx context.Context, req Request, res Result) error {
	if req.Op == OpDisconnect {
		return ExitStatusVerifier{}.Verify(ctx, req, res)
	}
	if len(res.Stdout) == 0 {
		return fmt.Errorf("%s on %s: no output: %w", req.Op, req.Station, wifi.ErrOperationFailed)
	}
	return nil
}

// ExitStatusVerifier trusts the exit status of iwctl.
type ExitStatusVerifier struct{}

func (ExitStatusVerifier) Verify(ctx context.Context, req Request, res Result) error {
	if res.ExitCode == 0 {
		return nil
	}
	if msg := res.Message(); msg != "" {
		return fmt.Errorf("%s on %s: %s: %w", req.Op, req.Station, msg, wifi.ErrOperationFailed)
	}
	return fmt.Errorf("%s on %s: exit status %d: %w", req.Op, req.Station, res.ExitCode, wifi.ErrOperationFailed)
}
