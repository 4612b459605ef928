// ABOUTME: AnsiManager passes bytes straight through to an output stream
// ABOUTME: Strings are flushed immediately; the alternate-screen toggle is a flag only

package screen

import (
	"fmt"
	"io"
	"sync"
)

// compile-time check: AnsiManager must satisfy Manager.
var _ Manager = (*AnsiManager)(nil)

// flusher is implemented by buffered outputs such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// AnsiManager writes to a terminal that interprets escape sequences itself.
type AnsiManager struct {
	mu        sync.Mutex
	alternate bool
	output    io.Writer
	input     io.Reader
}

// NewAnsiManager returns a manager writing to output and reading from input.
func NewAnsiManager(output io.Writer, input io.Reader) *AnsiManager {
	return &AnsiManager{output: output, input: input}
}

// WriteString writes s and flushes the output.
func (m *AnsiManager) WriteString(s string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := io.WriteString(m.output, s)
	if err != nil {
		return n, fmt.Errorf("writing string: %w", err)
	}
	if err := m.flush(); err != nil {
		return n, err
	}
	return n, nil
}

// Write passes p to the output without flushing.
func (m *AnsiManager) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.output.Write(p)
}

// WriteRaw writes escape sequences or other pre-encoded bytes unchanged.
func (m *AnsiManager) WriteRaw(p []byte) (int, error) {
	return m.Write(p)
}

// Flush flushes the output if it buffers.
func (m *AnsiManager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.flush()
}

func (m *AnsiManager) flush() error {
	f, ok := m.output.(flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}

// ToggleAlternateScreen records whether the alternate screen is in use.
func (m *AnsiManager) ToggleAlternateScreen(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.alternate = on
}

// IsAlternateScreen reports the recorded alternate-screen flag.
func (m *AnsiManager) IsAlternateScreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.alternate
}

// Backend returns BackendANSI.
func (m *AnsiManager) Backend() Backend { return BackendANSI }

// Input returns the input stream the manager was built with.
func (m *AnsiManager) Input() io.Reader { return m.input }
