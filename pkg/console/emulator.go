// ABOUTME: Emulator implements API over in-memory screen buffers for tests and headless use
// ABOUTME: Models cursor wrap/scroll, wide cells, resize, and injectable native failures

package console

import (
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 8

// compile-time check: Emulator must satisfy API.
var _ API = (*Emulator)(nil)

// Emulator is an in-memory console. Each handle addresses an independent
// screen buffer with its own cursor and current attribute.
type Emulator struct {
	mu       sync.Mutex
	buffers  map[Handle]*screenBuffer
	output   Handle
	next     Handle
	failures map[string]uint32
	calls    map[string]int
}

type screenBuffer struct {
	cols   int
	rows   int
	cells  []CharInfo
	cursor Coord
	attr   uint16
}

func newScreenBuffer(cols, rows int) *screenBuffer {
	b := &screenBuffer{cols: cols, rows: rows, attr: DefaultAttribute}
	b.cells = make([]CharInfo, cols*rows)
	for i := range b.cells {
		b.cells[i] = CharInfo{Char: blank, Attributes: DefaultAttribute}
	}
	return b
}

// NewEmulator returns an Emulator with one cols x rows output buffer.
func NewEmulator(cols, rows int) *Emulator {
	e := &Emulator{
		buffers:  make(map[Handle]*screenBuffer),
		next:     0x10,
		failures: make(map[string]uint32),
		calls:    make(map[string]int),
	}
	e.output = e.NewBuffer(cols, rows)
	return e
}

// Output returns the handle of the initial buffer.
func (e *Emulator) Output() Handle {
	return e.output
}

// NewBuffer allocates another screen buffer and returns its handle.
func (e *Emulator) NewBuffer(cols, rows int) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.next
	e.next += 4
	e.buffers[h] = newScreenBuffer(cols, rows)
	return h
}

// Fail makes every later call of op report failure with written set to
// the given count, until Recover is called.
func (e *Emulator) Fail(op string, written uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.failures[op] = written
}

// Recover clears an injected failure for op.
func (e *Emulator) Recover(op string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.failures, op)
}

// Calls returns how many times op was invoked.
func (e *Emulator) Calls(op string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.calls[op]
}

// Resize changes the dimensions of h, keeping the overlapping top-left
// content and clamping the cursor.
func (e *Emulator) Resize(h Handle, cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, ok := e.buffers[h]
	if !ok {
		return
	}
	nb := newScreenBuffer(cols, rows)
	nb.attr = old.attr
	for y := 0; y < min(rows, old.rows); y++ {
		copy(nb.cells[y*cols:y*cols+min(cols, old.cols)], old.cells[y*old.cols:])
	}
	nb.cursor = Coord{
		X: int16(min(int(old.cursor.X), cols-1)),
		Y: int16(min(int(old.cursor.Y), rows-1)),
	}
	e.buffers[h] = nb
}

// SetCursor moves the cursor of h.
func (e *Emulator) SetCursor(h Handle, at Coord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b, ok := e.buffers[h]; ok {
		b.cursor = at
	}
}

// SetAttribute selects the attribute used by later writes to h.
func (e *Emulator) SetAttribute(h Handle, attr uint16) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if b, ok := e.buffers[h]; ok {
		b.attr = attr
	}
}

// Cell returns the cell at (x, y) of h.
func (e *Emulator) Cell(h Handle, x, y int) CharInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.buffers[h]
	if !ok || x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return CharInfo{}
	}
	return b.cells[y*b.cols+x]
}

// Row returns the characters of row y of h with trailing blanks removed.
// The right half of a double-width cell is skipped.
func (e *Emulator) Row(h Handle, y int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.buffers[h]
	if !ok || y < 0 || y >= b.rows {
		return ""
	}
	units := make([]uint16, 0, b.cols)
	for _, c := range b.cells[y*b.cols : (y+1)*b.cols] {
		if c.Attributes&TrailingByte != 0 {
			continue
		}
		units = append(units, c.Char)
	}
	return strings.TrimRight(string(utf16.Decode(units)), " ")
}

// begin records the call and returns the buffer, or ok=false when the
// handle is unknown or a failure is injected. Must be called with mu held.
func (e *Emulator) begin(op string, h Handle, written *uint32) (*screenBuffer, bool) {
	e.calls[op]++
	if n, failing := e.failures[op]; failing {
		if written != nil {
			*written = n
		}
		return nil, false
	}
	b, ok := e.buffers[h]
	return b, ok
}

func (b *screenBuffer) index(at Coord) (int, bool) {
	if at.X < 0 || at.Y < 0 || int(at.X) >= b.cols || int(at.Y) >= b.rows {
		return 0, false
	}
	return int(at.Y)*b.cols + int(at.X), true
}

// FillConsoleOutputCharacter implements API.
func (e *Emulator) FillConsoleOutputCharacter(h Handle, ch uint16, length uint32, at Coord, written *uint32) Bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	*written = 0
	b, ok := e.begin(OpFillCharacter, h, written)
	if !ok {
		return 0
	}
	start, ok := b.index(at)
	if !ok {
		return 0
	}
	end := min(start+int(length), len(b.cells))
	for i := start; i < end; i++ {
		b.cells[i].Char = ch
	}
	*written = uint32(end - start)
	return 1
}

// FillConsoleOutputAttribute implements API.
func (e *Emulator) FillConsoleOutputAttribute(h Handle, attr uint16, length uint32, at Coord, written *uint32) Bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	*written = 0
	b, ok := e.begin(OpFillAttribute, h, written)
	if !ok {
		return 0
	}
	start, ok := b.index(at)
	if !ok {
		return 0
	}
	end := min(start+int(length), len(b.cells))
	for i := start; i < end; i++ {
		b.cells[i].Attributes = attr
	}
	*written = uint32(end - start)
	return 1
}

// WriteConsoleOutput implements API. The destination region is clipped to
// the buffer and to the source block; region is updated to what was written.
func (e *Emulator) WriteConsoleOutput(h Handle, block *Block, size, origin Coord, region *SmallRect) Bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.begin(OpWriteOutput, h, nil)
	if !ok || block == nil || region == nil {
		return 0
	}
	if int(size.X)*int(size.Y) > BlockCapacity || origin.X < 0 || origin.Y < 0 {
		return 0
	}

	left := max(int(region.Left), 0)
	top := max(int(region.Top), 0)
	right := min(int(region.Right), b.cols-1, int(region.Left)+int(size.X-origin.X)-1)
	bottom := min(int(region.Bottom), b.rows-1, int(region.Top)+int(size.Y-origin.Y)-1)

	for y := top; y <= bottom; y++ {
		sy := int(origin.Y) + y - int(region.Top)
		for x := left; x <= right; x++ {
			sx := int(origin.X) + x - int(region.Left)
			b.cells[y*b.cols+x] = block[sy*int(size.X)+sx]
		}
	}

	*region = SmallRect{Left: int16(left), Top: int16(top), Right: int16(right), Bottom: int16(bottom)}
	return 1
}

// WriteConsole implements API with processed output: CR, LF, BS and TAB
// move the cursor, text wraps at the right margin and scrolls at the bottom.
func (e *Emulator) WriteConsole(h Handle, text []uint16, written *uint32) Bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	*written = 0
	b, ok := e.begin(OpWriteConsole, h, written)
	if !ok {
		return 0
	}
	for _, r := range utf16.Decode(text) {
		b.put(r)
	}
	*written = uint32(len(text))
	return 1
}

// GetConsoleScreenBufferInfo implements API.
func (e *Emulator) GetConsoleScreenBufferInfo(h Handle, info *BufferInfo) Bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.begin(OpBufferInfo, h, nil)
	if !ok {
		return 0
	}
	size := Coord{X: int16(b.cols), Y: int16(b.rows)}
	*info = BufferInfo{
		Size:              size,
		CursorPosition:    b.cursor,
		Attributes:        b.attr,
		Window:            SmallRect{Right: size.X - 1, Bottom: size.Y - 1},
		MaximumWindowSize: size,
	}
	return 1
}

func (b *screenBuffer) put(r rune) {
	switch r {
	case '\r':
		b.cursor.X = 0
		return
	case '\n':
		b.newline()
		return
	case '\b':
		if b.cursor.X > 0 {
			b.cursor.X--
		}
		return
	case '\t':
		next := (int(b.cursor.X)/tabWidth + 1) * tabWidth
		b.cursor.X = int16(min(next, b.cols-1))
		return
	}

	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	unit := uint16(r)
	if r > 0xFFFF {
		unit = 0xFFFD
	}
	if w == 2 {
		if int(b.cursor.X)+2 > b.cols {
			b.newline()
		}
		b.place(CharInfo{Char: unit, Attributes: b.attr | LeadingByte})
		b.place(CharInfo{Char: unit, Attributes: b.attr | TrailingByte})
		return
	}
	b.place(CharInfo{Char: unit, Attributes: b.attr})
}

func (b *screenBuffer) place(c CharInfo) {
	i, ok := b.index(b.cursor)
	if !ok {
		return
	}
	b.cells[i] = c
	b.cursor.X++
	if int(b.cursor.X) >= b.cols {
		b.newline()
	}
}

func (b *screenBuffer) newline() {
	b.cursor.X = 0
	b.cursor.Y++
	if int(b.cursor.Y) < b.rows {
		return
	}
	copy(b.cells, b.cells[b.cols:])
	for i := len(b.cells) - b.cols; i < len(b.cells); i++ {
		b.cells[i] = CharInfo{Char: blank, Attributes: b.attr}
	}
	b.cursor.Y = int16(b.rows - 1)
}
