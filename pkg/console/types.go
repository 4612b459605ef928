// ABOUTME: Console data model mirroring the Win32 console structures field for field
// ABOUTME: Coord, SmallRect, CharInfo, BufferInfo, attribute bits and the fixed-size Block

package console

// Handle is an opaque reference to a console screen buffer.
type Handle uintptr

// Bool is a raw native status value. Interpret it only through Succeeded.
type Bool int32

// Coord addresses a cell: zero-based column X and row Y.
type Coord struct {
	X int16
	Y int16
}

// SmallRect is an inclusive rectangle of cells.
type SmallRect struct {
	Left   int16
	Top    int16
	Right  int16
	Bottom int16
}

// Width returns the number of columns covered by r.
func (r SmallRect) Width() int { return int(r.Right) - int(r.Left) + 1 }

// Height returns the number of rows covered by r.
func (r SmallRect) Height() int { return int(r.Bottom) - int(r.Top) + 1 }

// CharInfo is one cell: a UTF-16 code unit and its display attribute.
type CharInfo struct {
	Char       uint16
	Attributes uint16
}

// BufferInfo is a point-in-time snapshot of a screen buffer.
// Layout matches CONSOLE_SCREEN_BUFFER_INFO.
type BufferInfo struct {
	Size              Coord
	CursorPosition    Coord
	Attributes        uint16
	Window            SmallRect
	MaximumWindowSize Coord
}

// Display attribute bits.
const (
	ForegroundBlue      uint16 = 0x0001
	ForegroundGreen     uint16 = 0x0002
	ForegroundRed       uint16 = 0x0004
	ForegroundIntensity uint16 = 0x0008
	BackgroundBlue      uint16 = 0x0010
	BackgroundGreen     uint16 = 0x0020
	BackgroundRed       uint16 = 0x0040
	BackgroundIntensity uint16 = 0x0080
	LeadingByte         uint16 = 0x0100 // left half of a double-width cell
	TrailingByte        uint16 = 0x0200 // right half of a double-width cell
	ReverseVideo        uint16 = 0x4000
	Underscore          uint16 = 0x8000
)

// DefaultAttribute is light grey on black, the console default.
const DefaultAttribute = ForegroundRed | ForegroundGreen | ForegroundBlue

// BlockCapacity is the number of cells a single structured write carries.
const BlockCapacity = 160

// Block is the fixed-capacity cell buffer handed to WriteConsoleOutput.
type Block [BlockCapacity]CharInfo

const blank = uint16(' ')
