// ABOUTME: CLI entry point for conscreen with console crash recovery
// ABOUTME: Loads config, builds a screen manager, and writes a short demo through it

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	// termfix must be imported before anything renders with lipgloss.
	_ "github.com/mauromedda/conscreen/internal/termfix"

	"github.com/mauromedda/conscreen/internal/config"
	"github.com/mauromedda/conscreen/internal/log"
	"github.com/mauromedda/conscreen/pkg/screen"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("conscreen %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings, builds the manager and drives the demo.
func run(args cliArgs, out *os.File) error {
	settings, err := loadSettings(args)
	if err != nil {
		return err
	}
	if err := settings.ApplyLogLevel(); err != nil {
		return fmt.Errorf("setting log level: %w", err)
	}

	opts, err := settings.ScreenOptions()
	if err != nil {
		return fmt.Errorf("screen options: %w", err)
	}
	opts.Output = out

	m, err := screen.New(opts)
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	defer screen.RestoreOnPanic(m)

	return drive(m, args)
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings(args cliArgs) (*config.Settings, error) {
	path := args.configPath
	if path == "" {
		path = config.DefaultFile()
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if args.backend != "" {
		settings.Backend = args.backend
	}
	if args.verbose {
		settings.LogLevel = "debug"
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	log.Debug("config: %s backend=%s", path, settings.Backend)
	return settings, nil
}

// drive runs the demo, converting a fatal console failure into an error.
// The alternate screen is left after recovery, prompting only when the
// demo finished.
func drive(m screen.Manager, args cliArgs) (err error) {
	finished := false
	if args.alt {
		leave, altErr := enterAlternate(m)
		if altErr != nil {
			return altErr
		}
		defer func() { leave(finished) }()
	}
	defer screen.RecoverFatal(m, func(fatal error) { err = fatal })

	text := strings.Join(args.text, " ")
	if text == "" {
		text = "hello, console"
	}
	if err := demo(m, text); err != nil {
		return err
	}
	finished = true
	return m.Flush()
}
