// ABOUTME: WriteText transcodes UTF-8 to UTF-16 and appends it at the console cursor
// ABOUTME: Lenient by default: invalid input becomes a placeholder, native failure reports zero

package console

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/conscreen/internal/log"
)

// DefaultPlaceholder replaces text that is not valid UTF-8.
const DefaultPlaceholder = "�"

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

type textPolicy struct {
	placeholder string
	strict      bool
	normalize   bool
}

// WriteText writes text at the cursor of h and returns the byte length of
// the UTF-8 source that was written, not the number of UTF-16 units.
//
// Input that is not valid UTF-8 is replaced as a whole by the placeholder,
// whatever the offending bytes were. A failed native write returns (0, nil).
// With WithStrictText both cases return an error instead.
func (r *Registry) WriteText(h Handle, text []byte) (int, error) {
	src, units, err := r.prepareText(text)
	if err != nil || len(units) == 0 {
		return len(src), err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeUnits(h, src, units)
}

// WriteTextCurrent is WriteText on the active handle, resolved under the
// same lock as the write.
func (r *Registry) WriteTextCurrent(text []byte) (int, error) {
	src, units, err := r.prepareText(text)
	if err != nil || len(units) == 0 {
		return len(src), err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeUnits(r.currentHandle(), src, units)
}

// prepareText validates, optionally normalizes and transcodes text. src is
// the UTF-8 source whose length is reported on success.
func (r *Registry) prepareText(text []byte) (string, []uint16, error) {
	src := string(text)
	if !utf8.Valid(text) {
		if r.text.strict {
			return "", nil, ErrInvalidUTF8
		}
		log.Debug("write text: %d bytes of invalid UTF-8 replaced by placeholder", len(text))
		src = r.text.placeholder
	}

	out := src
	if r.text.normalize {
		out = norm.NFC.String(out)
	}
	units, err := encodeUTF16(out)
	if err != nil {
		return "", nil, fmt.Errorf("transcoding text: %w", err)
	}
	return src, units, nil
}

// writeUnits must be called with mu held.
func (r *Registry) writeUnits(h Handle, src string, units []uint16) (int, error) {
	cursor := r.bufferInfo(h).CursorPosition

	var written uint32
	if !Succeeded(r.api.WriteConsole(h, units, &written)) {
		if r.text.strict {
			return 0, &NativeError{Op: OpWriteConsole, Handle: h}
		}
		log.Debug("write text at (%d,%d): %d units failed after %d", cursor.X, cursor.Y, len(units), written)
		return 0, nil
	}
	return len(src), nil
}

// encodeUTF16 converts valid UTF-8 to little-endian UTF-16 code units.
func encodeUTF16(s string) ([]uint16, error) {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return units, nil
}
