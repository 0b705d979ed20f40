package tui

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
)

// ThemeFile is the [theme] table of the config file.
// We use pointers to strings so we can distinguish between a missing value
// and an empty string. This allows users to override only the colors they want.
type ThemeFile struct {
	Primary    *string `toml:"primary,omitempty"`
	Subtle     *string `toml:"subtle,omitempty"`
	Success    *string `toml:"success,omitempty"`
	Error      *string `toml:"error,omitempty"`
	Normal     *string `toml:"normal,omitempty"`
	SignalHigh *string `toml:"signal_high,omitempty"`
	SignalLow  *string `toml:"signal_low,omitempty"`
	SignalBars *string `toml:"signal_bars,omitempty"`
}

// Apply overrides the default theme with the values that are set and makes
// the result the current theme.
func (tf ThemeFile) Apply() error {
	// Start with the default theme and override it with the loaded values.
	theme := NewDefaultTheme()

	if tf.Primary != nil {
		theme.Primary = lipgloss.Color(*tf.Primary)
	}
	if tf.Subtle != nil {
		theme.Subtle = lipgloss.Color(*tf.Subtle)
	}
	if tf.Success != nil {
		theme.Success = lipgloss.Color(*tf.Success)
	}
	if tf.Error != nil {
		theme.Error = lipgloss.Color(*tf.Error)
	}
	if tf.Normal != nil {
		theme.Normal = lipgloss.Color(*tf.Normal)
	}
	// Signal colours are blended, so they must be hex on both backgrounds.
	if tf.SignalHigh != nil {
		theme.SignalHigh = lipgloss.AdaptiveColor{Light: *tf.SignalHigh, Dark: *tf.SignalHigh}
	}
	if tf.SignalLow != nil {
		theme.SignalLow = lipgloss.AdaptiveColor{Light: *tf.SignalLow, Dark: *tf.SignalLow}
	}
	if tf.SignalBars != nil {
		if n := len([]rune(*tf.SignalBars)); n != len([]rune(theme.SignalBars)) {
			return fmt.Errorf("signal_bars needs %d characters, got %d", len([]rune(theme.SignalBars)), n)
		}
		theme.SignalBars = *tf.SignalBars
	}

	CurrentTheme = theme
	return nil
}

// LoadTheme reads a standalone theme TOML document and applies it.
// If the reader is nil, it does nothing.
func LoadTheme(r io.Reader) error {
	if r == nil {
		return nil
	}
	var tf ThemeFile
	if _, err := toml.NewDecoder(r).Decode(&tf); err != nil {
		return err
	}
	return tf.Apply()
}
