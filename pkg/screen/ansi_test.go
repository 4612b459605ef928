// ABOUTME: Tests for AnsiManager pass-through writes, flushing, and the alternate flag
// ABOUTME: Buffered outputs use bufio.Writer; failing writers check error wrapping

package screen

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

var errBroken = errors.New("broken pipe")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBroken }

type failingFlusher struct{ bytes.Buffer }

func (*failingFlusher) Flush() error { return errBroken }

func TestAnsiManager_WriteStringFlushes(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	buf := bufio.NewWriter(&sink)
	m := NewAnsiManager(buf, nil)

	n, err := m.WriteString("\x1b[1mhéllo\x1b[0m")
	if err != nil {
		t.Fatal(err)
	}
	if n != len("\x1b[1mhéllo\x1b[0m") {
		t.Errorf("WriteString = %d, want byte length", n)
	}
	if got := sink.String(); got != "\x1b[1mhéllo\x1b[0m" {
		t.Errorf("sink = %q, want flushed text", got)
	}
}

func TestAnsiManager_WriteDoesNotFlush(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	buf := bufio.NewWriter(&sink)
	m := NewAnsiManager(buf, nil)

	if _, err := m.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if sink.Len() != 0 {
		t.Errorf("Write flushed %q", sink.String())
	}
	if err := m.Flush(); err != nil {
		t.Fatal(err)
	}
	if sink.String() != "abc" {
		t.Errorf("after Flush sink = %q", sink.String())
	}
}

func TestAnsiManager_WriteRawPassesBytes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	m := NewAnsiManager(&out, nil)
	raw := []byte{0x1b, '[', '?', '1', '0', '4', '9', 'h', 0xff}

	n, err := m.WriteRaw(raw)
	if err != nil || n != len(raw) {
		t.Fatalf("WriteRaw = (%d, %v)", n, err)
	}
	if !bytes.Equal(out.Bytes(), raw) {
		t.Errorf("output = %q, want unchanged bytes", out.Bytes())
	}
}

func TestAnsiManager_Errors(t *testing.T) {
	t.Parallel()

	m := NewAnsiManager(failingWriter{}, nil)
	if _, err := m.WriteString("x"); !errors.Is(err, errBroken) || !strings.Contains(err.Error(), "writing string") {
		t.Errorf("write error = %v", err)
	}

	f := &failingFlusher{}
	m = NewAnsiManager(f, nil)
	n, err := m.WriteString("ok")
	if !errors.Is(err, errBroken) || !strings.Contains(err.Error(), "flushing output") {
		t.Errorf("flush error = %v", err)
	}
	if n != 2 {
		t.Errorf("WriteString = %d before flush failure, want 2", n)
	}
	if err := m.Flush(); !errors.Is(err, errBroken) {
		t.Errorf("Flush error = %v", err)
	}
}

func TestAnsiManager_FlushWithoutBuffer(t *testing.T) {
	t.Parallel()

	m := NewAnsiManager(&bytes.Buffer{}, nil)
	if err := m.Flush(); err != nil {
		t.Errorf("Flush on unbuffered output = %v", err)
	}
}

func TestAnsiManager_AlternateScreenFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	m := NewAnsiManager(&out, nil)

	if m.IsAlternateScreen() {
		t.Fatal("new manager starts on the alternate screen")
	}
	m.ToggleAlternateScreen(true)
	m.ToggleAlternateScreen(true)
	if !m.IsAlternateScreen() {
		t.Error("toggle on not recorded")
	}
	m.ToggleAlternateScreen(false)
	if m.IsAlternateScreen() {
		t.Error("toggle off not recorded")
	}
	if out.Len() != 0 {
		t.Errorf("toggle emitted %q", out.String())
	}
}

func TestAnsiManager_BackendAndInput(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("q")
	var m Manager = NewAnsiManager(&bytes.Buffer{}, in)

	if m.Backend() != BackendANSI {
		t.Errorf("Backend = %s", m.Backend())
	}
	am, ok := m.(*AnsiManager)
	if !ok {
		t.Fatalf("manager is %T", m)
	}
	if am.Input() != in {
		t.Error("Input returned a different reader")
	}
}

func TestAnsiManager_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	var sink bytes.Buffer
	m := NewAnsiManager(bufio.NewWriter(&sink), nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = m.WriteString("line\n")
			}
		}()
	}
	wg.Wait()

	if got := strings.Count(sink.String(), "line\n"); got != 400 {
		t.Errorf("got %d complete lines, want 400", got)
	}
}
