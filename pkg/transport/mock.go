package transport

import (
	"bufio"
	"io"
	"net"
	"sync"
)

// MockTransport is a Transport backed by an in-memory pipe: code under
// test writes lines as if talking to a real coordinator console, and the
// test drives the other end directly — injecting inbound lines and
// inspecting what was written — rather than a stub that only records
// calls. It shares the streamTransport core so Expect/ReadUntil/ReadEager
// behave identically to the TCP and serial transports.
type MockTransport struct {
	*streamTransport
	testSide net.Conn

	writtenMu sync.Mutex
	written   []string
}

// NewMockTransport returns a ready-to-use mock transport.
func NewMockTransport() *MockTransport {
	harnessSide, testSide := net.Pipe()
	m := &MockTransport{
		streamTransport: newStreamTransport(harnessSide),
		testSide:        testSide,
	}
	go m.collectWrites()
	return m
}

func (m *MockTransport) collectWrites() {
	scanner := bufio.NewScanner(m.testSide)
	for scanner.Scan() {
		m.writtenMu.Lock()
		m.written = append(m.written, scanner.Text())
		m.writtenMu.Unlock()
	}
}

// Inject delivers a line to the transport under test, as if the
// coordinator console had emitted it.
func (m *MockTransport) Inject(line string) error {
	_, err := io.WriteString(m.testSide, line+"\n")
	return err
}

// WrittenLines returns every line written by the transport under test
// so far, in order.
func (m *MockTransport) WrittenLines() []string {
	m.writtenMu.Lock()
	defer m.writtenMu.Unlock()
	out := make([]string, len(m.written))
	copy(out, m.written)
	return out
}

// Close shuts down both ends of the pipe.
func (m *MockTransport) Close() error {
	err := m.streamTransport.Close()
	_ = m.testSide.Close()
	return err
}
