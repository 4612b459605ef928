// ABOUTME: NativeManager writes through a console Registry instead of a byte stream
// ABOUTME: Exposes the cell fill and structured write operations on the active buffer

package screen

import (
	"github.com/mauromedda/conscreen/internal/cellwidth"
	"github.com/mauromedda/conscreen/pkg/console"
)

// compile-time check: NativeManager must satisfy Manager.
var _ Manager = (*NativeManager)(nil)

// NativeManager drives a console screen buffer. All operations go through
// the Registry and are serialized by its lock.
type NativeManager struct {
	reg *console.Registry
}

// NewNativeManager returns a manager backed by reg.
func NewNativeManager(reg *console.Registry) *NativeManager {
	return &NativeManager{reg: reg}
}

// Registry returns the registry backing the manager.
func (m *NativeManager) Registry() *console.Registry { return m.reg }

// Write transcodes p and writes it at the cursor of the active buffer.
// The count is the byte length of the UTF-8 text written, or zero if the
// console rejected the write.
func (m *NativeManager) Write(p []byte) (int, error) {
	return m.reg.WriteTextCurrent(p)
}

// WriteString is Write for a string.
func (m *NativeManager) WriteString(s string) (int, error) {
	return m.Write([]byte(s))
}

// WriteRaw is Write. Escape sequences reach the console as text.
func (m *NativeManager) WriteRaw(p []byte) (int, error) {
	return m.Write(p)
}

// Flush is a no-op; console writes are not buffered.
func (m *NativeManager) Flush() error { return nil }

// ToggleAlternateScreen records the mode in the registry. Writes move to
// the alternate buffer only if one was registered with SetAlternateHandle;
// otherwise they stay on the primary buffer.
func (m *NativeManager) ToggleAlternateScreen(on bool) {
	m.reg.SetAlternateActive(on)
}

// IsAlternateScreen reports the recorded mode.
func (m *NativeManager) IsAlternateScreen() bool {
	return m.reg.AlternateActive()
}

// Backend returns BackendNative.
func (m *NativeManager) Backend() Backend { return BackendNative }

// BufferInfo returns a fresh snapshot of the active buffer.
func (m *NativeManager) BufferInfo() console.BufferInfo {
	info, _ := m.reg.BufferInfoAndHandle()
	return info
}

// FillCharacter blanks count cells from start.
func (m *NativeManager) FillCharacter(start console.Coord, count uint32) (uint32, bool) {
	return m.reg.FillCharacter(start, count)
}

// FillAttribute paints count cells from start with the current attribute.
func (m *NativeManager) FillAttribute(start console.Coord, count uint32) (uint32, bool) {
	return m.reg.FillAttribute(start, count)
}

// WriteBlock writes one block to the active buffer. It panics on failure.
func (m *NativeManager) WriteBlock(block *console.Block, size, origin console.Coord, region console.SmallRect) console.SmallRect {
	return m.reg.WriteBlockCurrent(block, size, origin, region)
}

// WriteCells writes a row-major grid of cells to the active buffer.
func (m *NativeManager) WriteCells(at console.Coord, width int, cells []console.CharInfo) {
	m.reg.WriteCellsCurrent(at, width, cells)
}

// DrawString writes s as one row of cells at at using the current
// attribute, without moving the cursor. Escape sequences in s are dropped.
func (m *NativeManager) DrawString(at console.Coord, s string) {
	m.reg.DrawText(at, cellwidth.Strip(s))
}
