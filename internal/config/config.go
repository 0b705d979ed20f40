// Package config holds the settings of iwconnect: built-in defaults, an
// optional TOML file, and command line overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/shazow/iwconnect/internal/tui"
)

// Connect verification modes.
const (
	VerifyExit   = "exit"
	VerifyOutput = "output"
	VerifyIWD    = "iwd"
)

// Prompt styles.
const (
	UILine = "line"
	UITUI  = "tui"
)

// Config is the resolved configuration for one run.
type Config struct {
	// IWCtl is the iwctl executable.
	IWCtl string `toml:"iwctl"`
	// Station is used without prompting when it is among the listed stations.
	Station string `toml:"station"`
	// Verify selects how a connect or disconnect is judged successful.
	Verify string `toml:"verify"`
	// UI selects plain line prompts or the full-screen picker.
	UI       string `toml:"ui"`
	LogLevel string `toml:"log_level"`
	// LogFile receives log records instead of stderr when set.
	LogFile string `toml:"log_file"`

	Theme tui.ThemeFile `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		IWCtl:    "iwctl",
		Verify:   VerifyExit,
		UI:       UILine,
		LogLevel: "warn",
	}
}

// DefaultPath is where the config file is looked for when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "iwconnect", "config.toml")
}

// Load reads the TOML file at path over the defaults. When required is
// false a missing file is not an error.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return Default(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Verify {
	case VerifyExit, VerifyOutput, VerifyIWD:
	default:
		return fmt.Errorf("invalid verify mode %q (want %s, %s or %s)", c.Verify, VerifyExit, VerifyOutput, VerifyIWD)
	}
	switch c.UI {
	case UILine, UITUI:
	default:
		return fmt.Errorf("invalid ui %q (want %s or %s)", c.UI, UILine, UITUI)
	}
	if c.IWCtl == "" {
		return errors.New("iwctl path is empty")
	}
	return nil
}

// Overrides are command line values. Empty strings leave the loaded value.
type Overrides struct {
	IWCtl    string
	Station  string
	Verify   string
	UI       string
	LogLevel string
	LogFile  string
}

// Apply returns c with the non-empty overrides applied.
func (c Config) Apply(o Overrides) (Config, error) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.IWCtl, o.IWCtl)
	set(&c.Station, o.Station)
	set(&c.Verify, o.Verify)
	set(&c.UI, o.UI)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFile, o.LogFile)
	return c, c.Validate()
}
