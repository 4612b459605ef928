// ABOUTME: Non-Windows stub for System; there is no native console buffer to bind
// ABOUTME: Callers fall back to the ANSI backend or use an Emulator

//go:build !windows

package console

// System reports ErrNoConsole outside Windows.
func System(fd uintptr) (API, Handle, error) {
	return nil, 0, ErrNoConsole
}
