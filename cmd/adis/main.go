// Command adis manages ADIS instance files: create, advance, encrypt,
// decrypt, render, list.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/comalice/adis/internal/core"
	"github.com/comalice/adis/internal/extensibility"
	"github.com/comalice/adis/internal/production"
)

// settings are the environment-level defaults; per-command flags override
// none of these directly, they cover the surrounding machinery (where files
// live, which time API to ask, how to log).
type settings struct {
	Dir     string `env:"ADIS_DIR" envDefault:"."`
	TimeURL string `env:"ADIS_TIME_URL" envDefault:"http://worldtimeapi.org/api/timezone/Etc/UTC"`
	Format  string `env:"ADIS_FORMAT" envDefault:"json"` // json or yaml
	LogFile string `env:"ADIS_LOG_FILE"`
	Debug   bool   `env:"ADIS_DEBUG"`
}

// app bundles the per-invocation collaborators.
type app struct {
	settings settings
	logger   *slog.Logger
	logClose func() error
}

func newApp() (*app, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	level := slog.LevelInfo
	if s.Debug {
		level = slog.LevelDebug
	}

	a := &app{settings: s, logClose: func() error { return nil }}
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if s.LogFile == "" {
		a.logger = slog.New(stderrHandler)
		return a, nil
	}

	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", s.LogFile, err)
	}
	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	a.logger = slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
	a.logClose = f.Close
	return a, nil
}

// cmdContext is the context for persistence calls; commands are short-lived
// so no cancellation is wired.
func cmdContext() context.Context {
	return context.Background()
}

// persister picks the snapshot format from the environment.
func (a *app) persister() (core.Persister, error) {
	switch a.settings.Format {
	case "json":
		return production.NewJSONPersister(a.settings.Dir)
	case "yaml":
		return production.NewYAMLPersister(a.settings.Dir)
	}
	return nil, fmt.Errorf("unknown format %q (want json or yaml)", a.settings.Format)
}

// tickSource builds the internet time source with local-clock fallback.
func (a *app) tickSource() core.TickSource {
	return &extensibility.HTTPTickSource{URL: a.settings.TimeURL}
}

func main() {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "adis: %v\n", err)
		os.Exit(1)
	}
	defer a.logClose()

	root := &cobra.Command{
		Use:           "adis",
		Short:         "Automaton-derived image seal: evolving-grid XOR encryption files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		a.createCmd(),
		a.advanceCmd(),
		a.encryptCmd(),
		a.decryptCmd(),
		a.showCmd(),
		a.renderCmd(),
		a.listCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "adis: %v\n", err)
		os.Exit(1)
	}
}
