// ABOUTME: Alternate-screen handling for the demo; managers only record the mode
// ABOUTME: so the ANSI path emits the switch sequences and waits for Enter before leaving

package main

import (
	"bufio"

	"github.com/mauromedda/conscreen/internal/log"
	"github.com/mauromedda/conscreen/pkg/screen"
)

const (
	enterAltScreen = "\x1b[?1049h\x1b[H"
	leaveAltScreen = "\x1b[?1049l"
)

// enterAlternate switches m to the alternate screen and returns the func
// that switches back. With prompt set, leave first waits for Enter.
func enterAlternate(m screen.Manager) (leave func(prompt bool), err error) {
	am, ok := m.(*screen.AnsiManager)
	if !ok {
		log.Warn("alternate screen needs a second console buffer; drawing on the primary buffer")
		return func(bool) {}, nil
	}

	if _, err := am.WriteRaw([]byte(enterAltScreen)); err != nil {
		return nil, err
	}
	am.ToggleAlternateScreen(true)

	return func(prompt bool) {
		if in := am.Input(); prompt && in != nil {
			_, _ = am.WriteString("press enter to return")
			_, _ = bufio.NewReader(in).ReadString('\n')
		}
		_, _ = am.WriteRaw([]byte(leaveAltScreen))
		am.ToggleAlternateScreen(false)
		_ = am.Flush()
	}, nil
}
