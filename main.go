package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/shazow/iwconnect/internal/config"
	"github.com/shazow/iwconnect/internal/log"
	"github.com/shazow/iwconnect/internal/tui"
	"github.com/shazow/iwconnect/wifi"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

// app carries what the commands share once flags are parsed.
type app struct {
	in  io.Reader
	out io.Writer

	cfg     config.Config
	backend wifi.Backend
	logger  *slog.Logger
	logFile io.Closer

	configPath string
	overrides  config.Overrides
	theme      string
	qr         bool
	version    bool
	listJSON   bool
	listSort   bool
}

func newApp(in io.Reader, out io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		cfg:    config.Default(),
		logger: slog.Default(),
	}
}

// command builds the command tree. Flag values land in a.
func (a *app) command() *ffcli.Command {
	rootFlagSet := flag.NewFlagSet("iwconnect", flag.ExitOnError)
	rootFlagSet.StringVar(&a.configPath, "config", "", "path to config toml file (env: IWCONNECT_CONFIG)")
	rootFlagSet.StringVar(&a.overrides.IWCtl, "iwctl", "", "path to the iwctl executable")
	rootFlagSet.StringVar(&a.overrides.Station, "station", "", "station to use without asking")
	rootFlagSet.StringVar(&a.overrides.Verify, "verify", "", "how to confirm a connect: exit, output or iwd")
	rootFlagSet.StringVar(&a.overrides.UI, "ui", "", "prompt style: line or tui")
	rootFlagSet.StringVar(&a.overrides.LogLevel, "log-level", "", "debug, info, warn or error")
	rootFlagSet.StringVar(&a.overrides.LogFile, "log-file", "", "write logs to this file instead of stderr")
	rootFlagSet.StringVar(&a.theme, "theme", "", "path to theme toml file (env: IWCONNECT_THEME)")
	rootFlagSet.BoolVar(&a.qr, "qr", false, "print a QR code for the network after connecting")
	rootFlagSet.BoolVar(&a.version, "version", false, "display version")

	listFlagSet := flag.NewFlagSet("list", flag.ExitOnError)
	listFlagSet.BoolVar(&a.listJSON, "json", false, "output in JSON format")
	listFlagSet.BoolVar(&a.listSort, "sort", false, "sort networks by signal instead of iwctl order")
	listCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: "iwconnect list [-json] [-sort]",
		ShortHelp:  "List stations and the networks they see",
		FlagSet:    listFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			return runList(ctx, a.out, listOptions{JSON: a.listJSON, Sort: a.listSort}, a.backend, a.logger)
		},
	}

	disconnectCmd := &ffcli.Command{
		Name:       "disconnect",
		ShortUsage: "iwconnect disconnect",
		ShortHelp:  "Disconnect the station",
		FlagSet:    flag.NewFlagSet("disconnect", flag.ExitOnError),
		Exec: func(ctx context.Context, args []string) error {
			return runDisconnect(ctx, a)
		},
	}

	return &ffcli.Command{
		ShortUsage:  "iwconnect [flags] [<subcommand>]",
		ShortHelp:   "Connect to a wifi network with iwctl",
		FlagSet:     rootFlagSet,
		Options:     []ff.Option{ff.WithEnvVarPrefix("IWCONNECT")},
		Subcommands: []*ffcli.Command{listCmd, disconnectCmd},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				fmt.Fprintf(a.out, "Unrecognized argument: %s\n", args[0])
				return nil
			}
			return runInteractive(ctx, a)
		},
	}
}

// setup resolves configuration, logging, theme and backend.
func (a *app) setup() error {
	path, required := a.configPath, true
	if path == "" {
		path, required = config.DefaultPath(), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if a.cfg, err = cfg.Apply(a.overrides); err != nil {
		return err
	}

	level, err := log.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stderr
	if a.cfg.LogFile != "" {
		f, err := log.OpenFile(a.cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		w = f
	}
	a.logger = log.Init(w, level)

	if err := a.cfg.Theme.Apply(); err != nil {
		return fmt.Errorf("invalid theme in config: %w", err)
	}
	if a.theme != "" {
		f, err := os.Open(a.theme)
		if err != nil {
			return fmt.Errorf("failed to open theme: %w", err)
		}
		defer f.Close()
		if err := tui.LoadTheme(f); err != nil {
			return fmt.Errorf("failed to load theme %s: %w", a.theme, err)
		}
	}

	a.backend, err = GetBackend(a.cfg, a.logger)
	return err
}

func (a *app) close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// main is the entry point of the application
func main() {
	a := newApp(os.Stdin, os.Stdout)
	root := a.command()

	if err := root.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if a.version {
		fmt.Println(Version)
		os.Exit(0)
	}

	if err := a.setup(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	err := root.Run(context.Background())
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
