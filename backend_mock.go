//go:build mock

package main

import (
	"log/slog"

	"github.com/shazow/iwconnect/internal/config"
	"github.com/shazow/iwconnect/wifi"
	mockBackend "github.com/shazow/iwconnect/wifi/mock"
)

func GetBackend(_ config.Config, _ *slog.Logger) (wifi.Backend, error) {
	return mockBackend.New()
}
