package iwctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/shazow/iwconnect/wifi"
)

// DefaultPath is the iwctl executable looked up on $PATH.
const DefaultPath = "iwctl"

// Result is the captured outcome of one iwctl invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Message returns the most useful text iwctl printed, for error reporting.
func (r Result) Message() string {
	if msg := strings.TrimSpace(string(r.Stderr)); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(r.Stdout))
}

// Runner runs an external command to completion.
//
// A command that ran and exited non-zero is not an error: the exit code is
// returned in the Result. Errors are reserved for failures to run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, name, args...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("failed to run %s: %w: %w", name, wifi.ErrNotAvailable, err)
	}
	return res, nil
}

// Gateway invokes iwctl and hands back what it printed.
type Gateway struct {
	// Path is the iwctl executable, DefaultPath if empty.
	Path   string
	Runner Runner
	Logger *slog.Logger
}

// NewGateway returns a Gateway running the iwctl at path.
func NewGateway(path string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		Path:   path,
		Runner: ExecRunner{},
		Logger: logger,
	}
}

func (g *Gateway) run(ctx context.Context, args ...string) (Result, error) {
	path := g.Path
	if path == "" {
		path = DefaultPath
	}
	g.Logger.Debug("running iwctl", "path", path, "args", redact(args))
	res, err := g.Runner.Run(ctx, path, args...)
	if err != nil {
		return res, err
	}
	g.Logger.Debug("iwctl finished", "exit", res.ExitCode, "stdout_bytes", len(res.Stdout))
	return res, nil
}

// text runs iwctl and returns its standard output as text.
func (g *Gateway) text(ctx context.Context, args ...string) (string, error) {
	res, err := g.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(res.Stdout) {
		return "", fmt.Errorf("iwctl %s: %w: not utf-8", strings.Join(args, " "), wifi.ErrInvalidOutput)
	}
	return string(res.Stdout), nil
}

// ListStations returns the raw `iwctl station list` table.
func (g *Gateway) ListStations(ctx context.Context) (string, error) {
	return g.text(ctx, "station", "list")
}

// Scan asks iwd to start a scan on the station. It does not wait for the
// scan to complete.
func (g *Gateway) Scan(ctx context.Context, station string) error {
	_, err := g.run(ctx, "station", station, "scan")
	return err
}

// ListNetworks returns the raw `iwctl station <station> get-networks` table.
func (g *Gateway) ListNetworks(ctx context.Context, station string) (string, error) {
	return g.text(ctx, "station", station, "get-networks")
}

// Connect joins ssid on the station. A nil passphrase connects without one.
func (g *Gateway) Connect(ctx context.Context, station, ssid string, passphrase *string) (Result, error) {
	var args []string
	if passphrase != nil {
		args = append(args, passphraseFlag, *passphrase)
	}
	args = append(args, "station", station, "connect", ssid)
	return g.run(ctx, args...)
}

// Disconnect drops the station's connection.
func (g *Gateway) Disconnect(ctx context.Context, station string) (Result, error) {
	return g.run(ctx, "station", station, "disconnect")
}

const passphraseFlag = "--passphrase"

// redact hides the value following the passphrase flag.
func redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == passphraseFlag {
			out[i+1] = "********"
		}
	}
	return out
}
