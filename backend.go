//go:build !mock

package main

import (
	"fmt"
	"log/slog"

	"github.com/shazow/iwconnect/internal/config"
	"github.com/shazow/iwconnect/wifi"
	"github.com/shazow/iwconnect/wifi/iwctl"
	"github.com/shazow/iwconnect/wifi/iwd"
)

// GetBackend returns the iwctl backend with the configured verifier.
func GetBackend(cfg config.Config, logger *slog.Logger) (wifi.Backend, error) {
	var verifier iwctl.Verifier
	switch cfg.Verify {
	case config.VerifyOutput:
		verifier = iwctl.OutputVerifier{}
	case config.VerifyIWD:
		v, err := iwd.New()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize iwd verifier: %w", err)
		}
		verifier = v
	default:
		verifier = iwctl.ExitStatusVerifier{}
	}
	return iwctl.New(cfg.IWCtl, verifier, logger), nil
}
