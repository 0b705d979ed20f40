//go:build linux

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIWCtl prints a two station table whatever it is asked.
const fakeIWCtl = `#!/bin/sh
printf '                            Devices in Station Mode\n'
printf -- '--------------------------------------------------------------------------------\n'
printf '  Name                  State            Scanning\n'
printf -- '--------------------------------------------------------------------------------\n'
printf '\033[0m  wlan0          disconnected                    \n'
printf '\033[0m  wlan1          disconnected                    \n'
`

// syncBuffer collects output written by another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInterruptAtPrompt(t *testing.T) {
	if iwctl := os.Getenv("IWCONNECT_TEST_RUN_MAIN"); iwctl != "" {
		os.Args = []string{"iwconnect", "-iwctl", iwctl}
		main()
		return
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "iwctl")
	require.NoError(t, os.WriteFile(script, []byte(fakeIWCtl), 0755))

	cmd := exec.Command(os.Args[0], "-test.run=^TestInterruptAtPrompt$")
	cmd.Env = append(os.Environ(),
		"IWCONNECT_TEST_RUN_MAIN="+script,
		"XDG_CONFIG_HOME="+dir,
		"HOME="+dir,
	)
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	defer stdin.Close()
	var out syncBuffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard
	require.NoError(t, cmd.Start())

	deadline := time.Now().Add(10 * time.Second)
	for !strings.Contains(out.String(), "Select your station: ") {
		if time.Now().After(deadline) {
			cmd.Process.Kill()
			t.Fatalf("never reached the station prompt, output: %q", out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}

	require.NoError(t, cmd.Process.Signal(os.Interrupt))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr), "want interrupted exit, got %v", err)
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		require.True(t, ok)
		assert.True(t, status.Signaled())
		assert.Equal(t, syscall.SIGINT, status.Signal())
	case <-time.After(3 * time.Second):
		cmd.Process.Kill()
		<-done
		t.Fatal("still waiting at the prompt after an interrupt")
	}
}
