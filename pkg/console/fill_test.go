// ABOUTME: Tests for FillCharacter and FillAttribute over the emulator
// ABOUTME: Covers zero counts, row wrapping, clipping, silent failures, and lock ordering

package console

import (
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestFill_ZeroCount(t *testing.T) {
	t.Parallel()

	reg, emu := newTestRegistry(t, 80, 24)

	for _, fill := range []func(Coord, uint32) (uint32, bool){reg.FillCharacter, reg.FillAttribute} {
		written, ok := fill(Coord{X: 3, Y: 3}, 0)
		if written != 0 || !ok {
			t.Errorf("fill(count=0) = (%d, %v), want (0, true)", written, ok)
		}
	}
	if n := emu.Calls(OpFillCharacter) + emu.Calls(OpFillAttribute) + emu.Calls(OpBufferInfo); n != 0 {
		t.Errorf("zero-count fills issued %d native calls, want 0", n)
	}
}

func TestFillCharacter_BlanksFirstTenCells(t *testing.T) {
	t.Parallel()

	reg, emu := newTestRegistry(t, 80, 24)
	if _, err := reg.WriteText(emu.Output(), []byte("abcdefghijkl")); err != nil {
		t.Fatal(err)
	}

	written, ok := reg.FillCharacter(Coord{}, 10)
	if written != 10 || !ok {
		t.Fatalf("FillCharacter = (%d, %v), want (10, true)", written, ok)
	}
	for x := 0; x < 10; x++ {
		if c := emu.Cell(emu.Output(), x, 0); c.Char != ' ' {
			t.Errorf("cell (%d,0) = %q, want blank", x, rune(c.Char))
		}
	}
	if got := emu.Row(emu.Output(), 0); got != strings.Repeat(" ", 10)+"kl" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestFillCharacter_WrapsRows(t *testing.T) {
	t.Parallel()

	reg, emu := newTestRegistry(t, 80, 24)
	h := emu.Output()
	if _, err := reg.WriteText(h, []byte(strings.Repeat("x", 160))); err != nil {
		t.Fatal(err)
	}

	written, ok := reg.FillCharacter(Coord{X: 78, Y: 0}, 4)
	if written != 4 || !ok {
		t.Fatalf("FillCharacter = (%d, %v), want (4, true)", written, ok)
	}
	for _, at := range []Coord{{X: 78, Y: 0}, {X: 79, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		if c := emu.Cell(h, int(at.X), int(at.Y)); c.Char != ' ' {
			t.Errorf("cell %+v = %q, want blank", at, rune(c.Char))
		}
	}
	if c := emu.Cell(h, 2, 1); c.Char != 'x' {
		t.Errorf("cell (2,1) = %q, want untouched", rune(c.Char))
	}
}

func TestFillCharacter_ClipsAtBufferEnd(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, 80, 24)
	written, ok := reg.FillCharacter(Coord{X: 0, Y: 23}, 100)
	if written != 80 || !ok {
		t.Errorf("FillCharacter = (%d, %v), want (80, true)", written, ok)
	}
}

func TestFillAttribute_UsesCurrentAttribute(t *testing.T) {
	t.Parallel()

	reg, emu := newTestRegistry(t, 80, 24)
	h := emu.Output()
	attr := ForegroundRed | BackgroundBlue | ForegroundIntensity
	emu.SetAttribute(h, attr)

	written, ok := reg.FillAttribute(Coord{X: 2, Y: 1}, 5)
	if written != 5 || !ok {
		t.Fatalf("FillAttribute = (%d, %v), want (5, true)", written, ok)
	}
	for x := 2; x < 7; x++ {
		if got := emu.Cell(h, x, 1).Attributes; got != attr {
			t.Errorf("cell (%d,1) attr = %#04x, want %#04x", x, got, attr)
		}
	}
	if got := emu.Cell(h, 7, 1).Attributes; got != DefaultAttribute {
		t.Errorf("cell (7,1) attr = %#04x, want default", got)
	}

	// A later change of the current attribute is picked up by the next fill.
	emu.SetAttribute(h, BackgroundGreen)
	reg.FillAttribute(Coord{X: 2, Y: 1}, 1)
	if got := emu.Cell(h, 2, 1).Attributes; got != BackgroundGreen {
		t.Errorf("cell (2,1) attr = %#04x after refill, want %#04x", got, BackgroundGreen)
	}
}

func TestFill_NativeFailureIsSilent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		op      string
		partial uint32
	}{
		{name: "attribute none written", op: OpFillAttribute, partial: 0},
		{name: "attribute partial", op: OpFillAttribute, partial: 2},
		{name: "character partial", op: OpFillCharacter, partial: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg, emu := newTestRegistry(t, 80, 24)
			emu.Fail(tt.op, tt.partial)

			fill := reg.FillCharacter
			if tt.op == OpFillAttribute {
				fill = reg.FillAttribute
			}
			written, ok := fill(Coord{}, 10)
			if ok {
				t.Error("fill reported success on native failure")
			}
			if written != tt.partial {
				t.Errorf("written = %d, want %d", written, tt.partial)
			}
			if emu.Calls(tt.op) != 1 {
				t.Errorf("native calls = %d, want exactly 1 (no retry)", emu.Calls(tt.op))
			}
		})
	}
}

func TestFill_OutOfBoundsStartFails(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, 80, 24)
	if written, ok := reg.FillCharacter(Coord{X: 80, Y: 0}, 1); ok || written != 0 {
		t.Errorf("FillCharacter out of bounds = (%d, %v), want (0, false)", written, ok)
	}
}

func TestFill_ConcurrentFillsDoNotInterleave(t *testing.T) {
	t.Parallel()

	emu := NewEmulator(80, 24)
	spy := &spyAPI{API: emu}
	reg := NewRegistry(spy, emu.Output())

	const rounds = 200
	var g errgroup.Group
	g.Go(func() error {
		for range rounds {
			reg.FillAttribute(Coord{}, 80)
		}
		return nil
	})
	g.Go(func() error {
		for range rounds {
			reg.FillCharacter(Coord{Y: 1}, 80)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	// Every snapshot taken by FillAttribute must be followed directly by its
	// own fill; a FillCharacter in between would mean the lock was not held.
	ops := spy.sequence()
	if len(ops) != 3*rounds {
		t.Fatalf("recorded %d native calls, want %d", len(ops), 3*rounds)
	}
	for i, op := range ops {
		if op != OpBufferInfo {
			continue
		}
		if i+1 >= len(ops) || ops[i+1] != OpFillAttribute {
			t.Fatalf("call %d: snapshot not followed by its attribute fill: %v", i, ops[i:min(i+3, len(ops))])
		}
	}
}
