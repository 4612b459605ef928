// ABOUTME: Demo output for each backend: a styled banner for ANSI terminals
// ABOUTME: and cell fills plus structured draws for the native console

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/conscreen/internal/cellwidth"
	"github.com/mauromedda/conscreen/pkg/console"
	"github.com/mauromedda/conscreen/pkg/screen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder())
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)

// renderBanner formats the ANSI demo text.
func renderBanner(m screen.Manager, text string) string {
	title := titleStyle.Render("conscreen")
	info := mutedStyle.Render(fmt.Sprintf("backend %s, alternate %t", m.Backend(), m.IsAlternateScreen()))
	return lipgloss.JoinVertical(lipgloss.Left, title, info, text) + "\n"
}

func demo(m screen.Manager, text string) error {
	switch v := m.(type) {
	case *screen.AnsiManager:
		_, err := v.WriteString(renderBanner(m, text))
		return err
	case *screen.NativeManager:
		return demoNative(v, text)
	}
	_, err := m.WriteString(text + "\n")
	return err
}

func demoNative(m *screen.NativeManager, text string) error {
	info := m.BufferInfo()
	row := info.CursorPosition.Y
	width := uint32(info.Size.X)

	start := console.Coord{Y: row}
	if n, ok := m.FillCharacter(start, width); !ok {
		return fmt.Errorf("clearing row %d: %d of %d cells", row, n, width)
	}
	if n, ok := m.FillAttribute(start, width); !ok {
		return fmt.Errorf("painting row %d: %d of %d cells", row, n, width)
	}

	label := fmt.Sprintf("[ conscreen %s ]", m.Backend())
	m.DrawString(start, label)
	m.DrawString(console.Coord{X: int16(cellwidth.String(label) + 1), Y: row}, strings.TrimSpace(text))

	_, err := m.WriteString("\r\n")
	return err
}
