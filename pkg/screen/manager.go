// ABOUTME: Manager is the backend-independent screen contract callers write through
// ABOUTME: Backend is the closed set of variants, chosen once when the manager is built

package screen

import (
	"fmt"
	"io"
	"strings"
)

// Manager writes text to a terminal surface.
//
// Write, WriteString and WriteRaw report how many bytes of the input were
// consumed. WriteRaw passes bytes on without any interpretation.
// ToggleAlternateScreen only records the mode; emitting the sequence or
// switching buffers is left to the caller. Backend-specific operations are
// reached by asserting to *AnsiManager or *NativeManager.
type Manager interface {
	io.Writer
	io.StringWriter
	WriteRaw(p []byte) (int, error)
	Flush() error
	ToggleAlternateScreen(on bool)
	IsAlternateScreen() bool
	Backend() Backend
}

// Backend identifies a Manager variant.
type Backend int

const (
	// BackendAuto lets New pick a backend from the output's capabilities.
	BackendAuto Backend = iota
	// BackendANSI writes a byte stream interpreted by the terminal.
	BackendANSI
	// BackendNative writes through the console buffer API.
	BackendNative
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendANSI:
		return "ansi"
	case BackendNative:
		return "native"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend maps "auto", "ansi" or "native" to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "ansi":
		return BackendANSI, nil
	case "native":
		return BackendNative, nil
	}
	return BackendAuto, fmt.Errorf("unknown backend %q", s)
}
