// ABOUTME: API is the native console call surface; Succeeded is the single status translator
// ABOUTME: NativeError carries fatal native failures; sentinel errors for the strict text path

package console

import (
	"errors"
	"fmt"
)

// API is the set of native console calls this package issues.
// Argument shapes follow the kernel32 functions of the same names.
// Implementations report status only; callers never inspect it directly.
type API interface {
	FillConsoleOutputCharacter(h Handle, ch uint16, length uint32, at Coord, written *uint32) Bool
	FillConsoleOutputAttribute(h Handle, attr uint16, length uint32, at Coord, written *uint32) Bool
	WriteConsoleOutput(h Handle, block *Block, size, origin Coord, region *SmallRect) Bool
	WriteConsole(h Handle, text []uint16, written *uint32) Bool
	GetConsoleScreenBufferInfo(h Handle, info *BufferInfo) Bool
}

// Native operation names, as reported in NativeError.Op.
const (
	OpFillCharacter = "FillConsoleOutputCharacter"
	OpFillAttribute = "FillConsoleOutputAttribute"
	OpWriteOutput   = "WriteConsoleOutput"
	OpWriteConsole  = "WriteConsole"
	OpBufferInfo    = "GetConsoleScreenBufferInfo"
)

// Succeeded reports whether a native status means success.
// Native calls return a non-zero BOOL on success.
func Succeeded(status Bool) bool {
	return status != 0
}

var (
	// ErrNoConsole is returned when no native console is available.
	ErrNoConsole = errors.New("native console not available")

	// ErrInvalidUTF8 is returned by WriteText in strict mode.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")
)

// NativeError describes a failed native call.
// WriteBlock and buffer-info queries panic with it.
type NativeError struct {
	Op     string
	Handle Handle
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("console: %s failed on handle %#x", e.Op, uintptr(e.Handle))
}
