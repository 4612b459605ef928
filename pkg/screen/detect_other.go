// ABOUTME: Terminals outside Windows always interpret escape sequences
// ABOUTME: so auto-detection never selects the native backend there

//go:build !windows

package screen

func supportsVT(uintptr) bool { return true }
