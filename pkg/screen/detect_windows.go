// ABOUTME: Windows probe for virtual-terminal processing on a console handle
// ABOUTME: Tries to enable the mode, checks it stuck, then restores the original mode

//go:build windows

package screen

import "golang.org/x/sys/windows"

// supportsVT reports whether the console behind fd accepts
// ENABLE_VIRTUAL_TERMINAL_PROCESSING. The console mode is left unchanged.
func supportsVT(fd uintptr) bool {
	h := windows.Handle(fd)

	var oldState uint32
	if windows.GetConsoleMode(h, &oldState) != nil {
		return false
	}
	if oldState&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}
	if windows.SetConsoleMode(h, oldState|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil {
		return false
	}
	defer windows.SetConsoleMode(h, oldState)

	var checkState uint32
	if windows.GetConsoleMode(h, &checkState) != nil {
		return false
	}
	return checkState&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0
}
