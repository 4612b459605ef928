// ABOUTME: Windows binding of API onto kernel32 console functions
// ABOUTME: Procs load lazily; COORD arguments travel packed in a single register

//go:build windows

package console

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute = kernel32.NewProc("FillConsoleOutputAttribute")
	procWriteConsoleOutput         = kernel32.NewProc("WriteConsoleOutputW")
	procWriteConsole               = kernel32.NewProc("WriteConsoleW")
	procGetConsoleScreenBufferInfo = kernel32.NewProc("GetConsoleScreenBufferInfo")
)

// systemAPI issues real kernel32 calls.
type systemAPI struct{}

// System returns the kernel32 API and the console handle behind fd.
// It fails with ErrNoConsole when fd is not a console screen buffer.
func System(fd uintptr) (API, Handle, error) {
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrNoConsole, err)
	}
	return systemAPI{}, Handle(h), nil
}

// packed lays a COORD out little endian, X in the low word.
func (c Coord) packed() uintptr {
	return uintptr(uint16(c.X)) | uintptr(uint16(c.Y))<<16
}

func (systemAPI) FillConsoleOutputCharacter(h Handle, ch uint16, length uint32, at Coord, written *uint32) Bool {
	r1, _, _ := procFillConsoleOutputCharacter.Call(
		uintptr(h),
		uintptr(ch),
		uintptr(length),
		at.packed(),
		uintptr(unsafe.Pointer(written)))
	return Bool(r1)
}

func (systemAPI) FillConsoleOutputAttribute(h Handle, attr uint16, length uint32, at Coord, written *uint32) Bool {
	r1, _, _ := procFillConsoleOutputAttribute.Call(
		uintptr(h),
		uintptr(attr),
		uintptr(length),
		at.packed(),
		uintptr(unsafe.Pointer(written)))
	return Bool(r1)
}

func (systemAPI) WriteConsoleOutput(h Handle, block *Block, size, origin Coord, region *SmallRect) Bool {
	r1, _, _ := procWriteConsoleOutput.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&block[0])),
		size.packed(),
		origin.packed(),
		uintptr(unsafe.Pointer(region)))
	return Bool(r1)
}

func (systemAPI) WriteConsole(h Handle, text []uint16, written *uint32) Bool {
	var p *uint16
	if len(text) > 0 {
		p = &text[0]
	}
	r1, _, _ := procWriteConsole.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(p)),
		uintptr(len(text)),
		uintptr(unsafe.Pointer(written)),
		0) // reserved, must be NULL
	return Bool(r1)
}

func (systemAPI) GetConsoleScreenBufferInfo(h Handle, info *BufferInfo) Bool {
	r1, _, _ := procGetConsoleScreenBufferInfo.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(info)))
	return Bool(r1)
}
