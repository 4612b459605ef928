// ABOUTME: Fixes lipgloss to a dark background before any banner is rendered
// ABOUTME: Import with _ from main so adaptive colors never trigger a terminal query

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// Resolving an AdaptiveColor otherwise sends OSC 11 and the reply
	// arrives on stdin, where the alternate-screen prompt reads it.
	lipgloss.SetHasDarkBackground(true)
}
