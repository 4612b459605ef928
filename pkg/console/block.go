// ABOUTME: Structured writes of character+attribute cells into a screen buffer
// ABOUTME: WriteBlock is fatal on failure; WriteCells chunks larger grids into fixed blocks

package console

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/mauromedda/conscreen/internal/cellwidth"
)

// WriteBlock copies a pre-populated block into the buffer behind h.
// size gives the logical dimensions of block, origin the top-left source
// cell inside it, and region the destination rectangle. The rectangle
// actually written is returned.
//
// A native failure leaves the display in an unknown state, so WriteBlock
// panics with a *NativeError instead of returning.
func (r *Registry) WriteBlock(h Handle, block *Block, size, origin Coord, region SmallRect) SmallRect {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeBlock(h, block, size, origin, region)
}

// WriteBlockCurrent is WriteBlock on the active handle, resolved under the
// same lock as the write.
func (r *Registry) WriteBlockCurrent(block *Block, size, origin Coord, region SmallRect) SmallRect {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeBlock(r.currentHandle(), block, size, origin, region)
}

func (r *Registry) writeBlock(h Handle, block *Block, size, origin Coord, region SmallRect) SmallRect {
	if size.X < 0 || size.Y < 0 || int(size.X)*int(size.Y) > BlockCapacity {
		panic(fmt.Sprintf("console: block size %dx%d exceeds capacity %d", size.X, size.Y, BlockCapacity))
	}
	if !Succeeded(r.api.WriteConsoleOutput(h, block, size, origin, &region)) {
		panic(&NativeError{Op: OpWriteOutput, Handle: h})
	}
	return region
}

// WriteCells writes a row-major grid of cells, width columns wide, with its
// top-left corner at at. The grid is split into blocks of at most
// BlockCapacity cells; a trailing partial row is written on its own.
// The whole grid is written under one lock acquisition.
func (r *Registry) WriteCells(h Handle, at Coord, width int, cells []CharInfo) {
	if width <= 0 || len(cells) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.writeCells(h, at, width, cells)
}

// WriteCellsCurrent is WriteCells on the active handle, resolved under the
// same lock as the writes.
func (r *Registry) WriteCellsCurrent(at Coord, width int, cells []CharInfo) {
	if width <= 0 || len(cells) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.writeCells(r.currentHandle(), at, width, cells)
}

// writeCells must be called with mu held.
func (r *Registry) writeCells(h Handle, at Coord, width int, cells []CharInfo) {
	var block Block
	rows := (len(cells) + width - 1) / width

	if width > BlockCapacity {
		for y := 0; y < rows; y++ {
			line := cells[y*width : min((y+1)*width, len(cells))]
			for x := 0; x < len(line); x += BlockCapacity {
				seg := line[x:min(x+BlockCapacity, len(line))]
				r.writeChunk(h, &block, seg, len(seg), 1, Coord{X: at.X + int16(x), Y: at.Y + int16(y)})
			}
		}
		return
	}

	perBlock := BlockCapacity / width
	for y := 0; y < rows; y += perBlock {
		n := min(perBlock, rows-y)
		chunk := cells[y*width : min((y+n)*width, len(cells))]
		full := len(chunk) / width
		if full > 0 {
			r.writeChunk(h, &block, chunk[:full*width], width, full, Coord{X: at.X, Y: at.Y + int16(y)})
		}
		if rest := chunk[full*width:]; len(rest) > 0 {
			r.writeChunk(h, &block, rest, len(rest), 1, Coord{X: at.X, Y: at.Y + int16(y+full)})
		}
	}
}

// DrawText lays s out as one row of cells at at on the active handle,
// using the attribute currently selected there. The snapshot, the handle
// and the writes share one lock acquisition. The cursor does not move.
func (r *Registry) DrawText(at Coord, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.currentHandle()
	cells := CellsFromString(s, r.bufferInfo(h).Attributes)
	if len(cells) == 0 {
		return
	}
	r.writeCells(h, at, len(cells), cells)
}

func (r *Registry) writeChunk(h Handle, block *Block, cells []CharInfo, width, height int, at Coord) {
	copy(block[:], cells)
	size := Coord{X: int16(width), Y: int16(height)}
	region := SmallRect{
		Left:   at.X,
		Top:    at.Y,
		Right:  at.X + int16(width) - 1,
		Bottom: at.Y + int16(height) - 1,
	}
	r.writeBlock(h, block, size, Coord{}, region)
}

// CellsFromString lays s out as cells carrying attr. Double-width clusters
// occupy two cells flagged LeadingByte and TrailingByte; zero-width clusters
// are dropped. A cell holds one UTF-16 unit, so runes outside the BMP are
// replaced with U+FFFD.
func CellsFromString(s string, attr uint16) []CharInfo {
	cells := make([]CharInfo, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)

		r, _ := utf8.DecodeRuneInString(cluster)
		unit := uint16(utf8.RuneError)
		if r != utf8.RuneError && r <= 0xFFFF {
			unit = uint16(r)
		}

		switch cellwidth.Cluster(cluster) {
		case 0:
			continue
		case 2:
			cells = append(cells,
				CharInfo{Char: unit, Attributes: attr | LeadingByte},
				CharInfo{Char: unit, Attributes: attr | TrailingByte},
			)
		default:
			cells = append(cells, CharInfo{Char: unit, Attributes: attr})
		}
	}
	return cells
}
