// ABOUTME: New picks the screen backend once, from options and the output's capabilities
// ABOUTME: Auto prefers ANSI and falls back to the native console where VT output is missing

package screen

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/mauromedda/conscreen/internal/log"
	"github.com/mauromedda/conscreen/pkg/console"
)

// Options controls how New builds a Manager.
type Options struct {
	Backend Backend
	Output  *os.File  // defaults to os.Stdout
	Input   io.Reader // defaults to os.Stdin

	// Native backend text handling; see console.WithPlaceholder and friends.
	Placeholder  string
	StrictText   bool
	NormalizeNFC bool
}

// New returns a Manager for opts.Output using the requested backend.
func New(opts Options) (Manager, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	var in io.Reader = os.Stdin
	if opts.Input != nil {
		in = opts.Input
	}

	backend := opts.Backend
	if backend == BackendAuto {
		backend = detectBackend(out)
	}
	log.Debug("screen backend: %s (requested %s)", backend, opts.Backend)

	switch backend {
	case BackendANSI:
		return NewAnsiManager(out, in), nil
	case BackendNative:
		api, h, err := console.System(out.Fd())
		if err != nil {
			return nil, fmt.Errorf("opening native console: %w", err)
		}
		return NewNativeManager(console.NewRegistry(api, h, opts.registryOptions()...)), nil
	}
	return nil, fmt.Errorf("unsupported backend %s", backend)
}

func (o Options) registryOptions() []console.Option {
	opts := []console.Option{
		console.WithStrictText(o.StrictText),
		console.WithNormalize(o.NormalizeNFC),
	}
	if o.Placeholder != "" {
		opts = append(opts, console.WithPlaceholder(o.Placeholder))
	}
	return opts
}

// detectBackend returns BackendNative only for a real console that cannot
// process virtual-terminal sequences.
func detectBackend(out *os.File) Backend {
	if !term.IsTerminal(int(out.Fd())) {
		return BackendANSI
	}
	if !supportsVT(out.Fd()) {
		return BackendNative
	}
	return BackendANSI
}
