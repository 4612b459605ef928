// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --backend, --alt, --verbose, --version

package main

import (
	"flag"
	"io"
)

type cliArgs struct {
	configPath string
	backend    string
	alt        bool
	verbose    bool
	version    bool
	text       []string
}

func parseFlags(argv []string, errOut io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("conscreen", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&args.configPath, "config", "", "Config file (default ~/.conscreen/config.yaml)")
	fs.StringVar(&args.backend, "backend", "", "Screen backend: auto, ansi or native")
	fs.BoolVar(&args.alt, "alt", false, "Draw on the alternate screen")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	args.text = fs.Args()
	return args, nil
}
