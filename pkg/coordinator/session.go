package coordinator

import (
	"sync"
	"time"

	"github.com/urmzd/zcl-harness/pkg/zcl"
)

// Session serialises concurrent access to a single Controller. The
// protocol engine itself is not reentrant — one goroutine, one
// outstanding operation — but the inspection API (pkg/api) and the
// scripting tool server (pkg/mcpserver) both hold a shared reference to
// the same underlying coordinator, so something has to keep a command's
// two emitted lines adjacent on the wire instead of interleaved with a
// concurrent caller's. Session is that something: a plain mutex around
// every Controller method it exposes.
type Session struct {
	mu         sync.Mutex
	controller *Controller
}

// NewSession wraps controller for safe concurrent use.
func NewSession(controller *Controller) *Session {
	return &Session{controller: controller}
}

func (s *Session) FormNetwork(channel, power uint8, panID uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.FormNetwork(channel, power, panID)
}

func (s *Session) LeaveNetwork() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.LeaveNetwork()
}

func (s *Session) EnablePermitJoin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.EnablePermitJoin()
}

func (s *Session) DisablePermitJoin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.DisablePermitJoin()
}

func (s *Session) WaitForJoin(timeout time.Duration) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.WaitForJoin(timeout)
}

func (s *Session) SendZCLCommand(destination uint16, inv *zcl.Invocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.SendZCLCommand(destination, inv)
}

func (s *Session) SendZCLOTANotify(destination uint16, inv *zcl.Invocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.SendZCLOTANotify(destination, inv)
}

func (s *Session) WriteAttribute(destination uint16, attr *zcl.Attribute, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.WriteAttribute(destination, attr, value)
}

func (s *Session) ReadAttribute(destination uint16, attr *zcl.Attribute, timeout time.Duration) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.ReadAttribute(destination, attr, timeout)
}

func (s *Session) ExpectZCLCommand(inv *zcl.Invocation, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.ExpectZCLCommand(inv, timeout)
}

func (s *Session) BindNode(nodeID uint16, ieeeHex string, clusterID uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.BindNode(nodeID, ieeeHex, clusterID)
}

func (s *Session) ConfigureReporting(nodeID uint16, args ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.ConfigureReporting(nodeID, args...)
}

func (s *Session) MakeServer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.MakeServer()
}

func (s *Session) MakeClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.MakeClient()
}

// State returns the controller's last-observed network state without
// requiring an in-flight operation.
func (s *Session) State() NetworkState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.State()
}

// Sequence returns the controller's current outgoing sequence number.
func (s *Session) Sequence() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Sequence()
}
