// ABOUTME: Shared fixtures for console tests: emulator-backed registries and panic checks
// ABOUTME: spyAPI records the order of native calls to verify lock discipline

package console

import (
	"errors"
	"sync"
	"testing"
)

func newTestRegistry(t *testing.T, cols, rows int, opts ...Option) (*Registry, *Emulator) {
	t.Helper()

	emu := NewEmulator(cols, rows)
	return NewRegistry(emu, emu.Output(), opts...), emu
}

// mustPanicNative runs fn and fails unless it panics with a *NativeError for op.
func mustPanicNative(t *testing.T, op string, fn func()) {
	t.Helper()

	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic from %s", op)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v (%T) is not an error", r, r)
		}
		var nerr *NativeError
		if !errors.As(err, &nerr) {
			t.Fatalf("panic value %v is not a *NativeError", err)
		}
		if nerr.Op != op {
			t.Errorf("NativeError.Op = %q, want %q", nerr.Op, op)
		}
	}()
	fn()
}

// spyAPI forwards to an API and records the sequence of operations.
type spyAPI struct {
	API

	mu  sync.Mutex
	ops []string

	// onWrite runs inside WriteConsole and WriteConsoleOutput with the
	// handle the write targets.
	onWrite func(h Handle)
}

func (s *spyAPI) record(op string) {
	s.mu.Lock()
	s.ops = append(s.ops, op)
	s.mu.Unlock()
}

func (s *spyAPI) sequence() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.ops...)
}

func (s *spyAPI) FillConsoleOutputCharacter(h Handle, ch uint16, length uint32, at Coord, written *uint32) Bool {
	s.record(OpFillCharacter)
	return s.API.FillConsoleOutputCharacter(h, ch, length, at, written)
}

func (s *spyAPI) FillConsoleOutputAttribute(h Handle, attr uint16, length uint32, at Coord, written *uint32) Bool {
	s.record(OpFillAttribute)
	return s.API.FillConsoleOutputAttribute(h, attr, length, at, written)
}

func (s *spyAPI) GetConsoleScreenBufferInfo(h Handle, info *BufferInfo) Bool {
	s.record(OpBufferInfo)
	return s.API.GetConsoleScreenBufferInfo(h, info)
}

func (s *spyAPI) WriteConsole(h Handle, text []uint16, written *uint32) Bool {
	if s.onWrite != nil {
		s.onWrite(h)
	}
	return s.API.WriteConsole(h, text, written)
}

func (s *spyAPI) WriteConsoleOutput(h Handle, block *Block, size, origin Coord, region *SmallRect) Bool {
	if s.onWrite != nil {
		s.onWrite(h)
	}
	return s.API.WriteConsoleOutput(h, block, size, origin, region)
}
