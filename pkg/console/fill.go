// ABOUTME: Cell fill primitives: blank characters and the current attribute over a run of cells
// ABOUTME: Failures are reported as (written, false) and never retried

package console

import "github.com/mauromedda/conscreen/internal/log"

// FillCharacter writes count blank cells row-major from start on the active
// handle. A count of zero is a no-op that reports success.
func (r *Registry) FillCharacter(start Coord, count uint32) (uint32, bool) {
	if count == 0 {
		return 0, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.currentHandle()
	var written uint32
	ok := Succeeded(r.api.FillConsoleOutputCharacter(h, blank, count, start, &written))
	if !ok {
		log.Debug("fill character at (%d,%d) x%d failed after %d cells", start.X, start.Y, count, written)
	}
	return written, ok
}

// FillAttribute writes count copies of the attribute currently selected on
// the active buffer, starting at start. The attribute is read from a fresh
// snapshot on every call. A count of zero is a no-op that reports success.
func (r *Registry) FillAttribute(start Coord, count uint32) (uint32, bool) {
	if count == 0 {
		return 0, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.currentHandle()
	info := r.bufferInfo(h)
	var written uint32
	ok := Succeeded(r.api.FillConsoleOutputAttribute(h, info.Attributes, count, start, &written))
	if !ok {
		log.Debug("fill attribute %#04x at (%d,%d) x%d failed after %d cells",
			info.Attributes, start.X, start.Y, count, written)
	}
	return written, ok
}
