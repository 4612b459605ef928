// ABOUTME: Display width of grapheme clusters and strings in console cells
// ABOUTME: Escape sequences occupy no cells and can be stripped before layout

package cellwidth

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const esc = '\x1b'

// Cluster returns the number of cells a single grapheme cluster occupies:
// 0 for combining-only or control clusters, 2 for East Asian wide and
// emoji clusters, 1 otherwise. The width is that of the first rune.
func Cluster(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}

// String returns the cell width of s after removing escape sequences.
func String(s string) int {
	if isPlainASCII(s) {
		return len(s)
	}
	s = Strip(s)
	w := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		w += Cluster(cluster)
	}
	return w
}

// Strip removes CSI, OSC, DCS/APC/PM and two-byte escape sequences from s.
// An unterminated sequence is dropped up to the end of s.
func Strip(s string) string {
	if !strings.ContainsRune(s, esc) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == esc {
			i = skipSequence(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// skipSequence returns the index just past the escape sequence at s[i].
func skipSequence(s string, i int) int {
	i++
	if i >= len(s) {
		return i
	}

	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']':
		// OSC ends with BEL or ST.
		for i++; i < len(s); i++ {
			if s[i] == '\a' {
				return i + 1
			}
			if s[i] == esc && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case 'P', '_', '^':
		for i++; i < len(s); i++ {
			if s[i] == esc && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		return min(i+2, len(s))
	}
	return i + 1
}
