package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/shazow/iwconnect/wifi"
)

func resetTheme(t *testing.T) {
	t.Cleanup(func() { CurrentTheme = NewDefaultTheme() })
}

func TestLoadTheme(t *testing.T) {
	resetTheme(t)
	tomlData := `
		primary = "#FF0000"
		success = "#0000FF"
		signal_high = "#008000"
		signal_bars = "1234"
	`

	err := LoadTheme(strings.NewReader(tomlData))
	if err != nil {
		t.Fatalf("LoadTheme failed: %v", err)
	}

	expectedColor := lipgloss.Color("#FF0000")
	if CurrentTheme.Primary != expectedColor {
		t.Errorf("Expected Primary color to be %v, but got %v", expectedColor, CurrentTheme.Primary)
	}
	if CurrentTheme.SignalHigh.Dark != "#008000" || CurrentTheme.SignalHigh.Light != "#008000" {
		t.Errorf("Expected SignalHigh to be #008000 on both backgrounds, got %+v", CurrentTheme.SignalHigh)
	}
	// Unset values keep their defaults.
	if CurrentTheme.Error != NewDefaultTheme().Error {
		t.Errorf("Expected Error color to keep its default, got %v", CurrentTheme.Error)
	}
}

func TestLoadTheme_NilReader(t *testing.T) {
	resetTheme(t)
	originalTheme := CurrentTheme

	err := LoadTheme(nil)
	if err != nil {
		t.Fatalf("LoadTheme(nil) should not return an error, but got: %v", err)
	}
	if CurrentTheme.Primary != originalTheme.Primary {
		t.Errorf("Theme should not change when reader is nil")
	}
}

func TestLoadTheme_InvalidToml(t *testing.T) {
	resetTheme(t)
	err := LoadTheme(strings.NewReader(`primary = `))
	if err == nil {
		t.Fatalf("LoadTheme should have failed for invalid TOML, but it didn't")
	}
}

func TestLoadTheme_SignalBarsLength(t *testing.T) {
	resetTheme(t)
	err := LoadTheme(strings.NewReader(`signal_bars = "##"`))
	if err == nil {
		t.Fatalf("LoadTheme should reject signal_bars of the wrong length")
	}
	if CurrentTheme.SignalBars != NewDefaultTheme().SignalBars {
		t.Errorf("Theme should not change on error")
	}
}

func TestStyles_PlainOutput(t *testing.T) {
	resetTheme(t)
	var buf bytes.Buffer
	s := NewStyles(&buf)

	got := s.Network(wifi.Network{SSID: "HomeNet", Security: wifi.SecurityWPA, Signal: 3, IsActive: true})
	if want := "HomeNet  ▂▄▆█ psk (connected)"; got != want {
		t.Errorf("Network() = %q, want %q", got, want)
	}

	got = s.Network(wifi.Network{SSID: "Mystery"})
	if want := "Mystery  ▂▄▆█"; got != want {
		t.Errorf("Network() = %q, want %q", got, want)
	}

	got = s.Station(wifi.Station{Name: "wlan1", State: "disconnected", Scanning: true})
	if want := "wlan1  disconnected, scanning"; got != want {
		t.Errorf("Station() = %q, want %q", got, want)
	}

	if got := s.Station(wifi.Station{Name: "wlan0"}); got != "wlan0" {
		t.Errorf("Station() = %q, want %q", got, "wlan0")
	}
}
