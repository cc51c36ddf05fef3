package mcpserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/urmzd/zcl-harness/pkg/coordinator"
	"github.com/urmzd/zcl-harness/pkg/transport"
	"github.com/urmzd/zcl-harness/pkg/zcl"
)

func waitForWrittenLines(t *testing.T, m *transport.MockTransport, n int) []string {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		lines := m.WrittenLines()
		if len(lines) >= n {
			return lines
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d written lines, got %v", n, lines)
		case <-time.After(time.Millisecond):
		}
	}
}

const doorLockXML = `<?xml version="1.0"?>
<configurator>
  <cluster>
    <name>Door Lock</name>
    <define>DOOR_LOCK_CLUSTER</define>
    <code>0x0101</code>
    <command name="SetPin" code="0x00">
      <arg name="user_id" type="INT16U"/>
      <arg name="pin" type="CHAR_STRING"/>
    </command>
    <attribute code="0x0000" type="ENUM8">Lock State</attribute>
  </cluster>
</configurator>`

func testServer(t *testing.T) (*Server, *transport.MockTransport) {
	t.Helper()
	schema, err := zcl.LoadSchemaReader(strings.NewReader(doorLockXML))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	m := transport.NewMockTransport()
	session := coordinator.NewSession(coordinator.NewController(m))
	return NewServer(schema, session), m
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestHandleListClusters(t *testing.T) {
	s, m := testServer(t)
	defer m.Close()

	result, err := s.handleListClusters(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result.Content)
	}
}

func TestHandleDescribeCommandUnknownCommand(t *testing.T) {
	s, m := testServer(t)
	defer m.Close()

	result, err := s.handleDescribeCommand(context.Background(), callRequest(map[string]any{
		"cluster": "Door Lock",
		"command": "Nonexistent",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for an unknown command")
	}
}

func TestHandleSendCommandRejectsWrongArity(t *testing.T) {
	s, m := testServer(t)
	defer m.Close()

	result, err := s.handleSendCommand(context.Background(), callRequest(map[string]any{
		"destination": "0x1234",
		"cluster":     "Door Lock",
		"command":     "SetPin",
		"args":        `[1]`,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for wrong argument count")
	}
}

func TestHandleSendCommandEmitsWireLines(t *testing.T) {
	s, m := testServer(t)
	defer m.Close()

	result, err := s.handleSendCommand(context.Background(), callRequest(map[string]any{
		"destination": "0x1234",
		"cluster":     "Door Lock",
		"command":     "SetPin",
		"args":        `[7, "1234"]`,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result.Content)
	}

	lines := waitForWrittenLines(t, m, 2)
	if !strings.HasPrefix(lines[0], "raw 0x0101") {
		t.Errorf("unexpected raw line: %s", lines[0])
	}
	if lines[1] != "send 0x1234 1 1" {
		t.Errorf("unexpected send line: %s", lines[1])
	}
}

func TestToExpectationConvertsBetween(t *testing.T) {
	e := toExpectation(map[string]any{"between": []any{float64(1), float64(5)}})
	between, ok := e.(zcl.Between)
	if !ok {
		t.Fatalf("got %T, want zcl.Between", e)
	}
	if between.Low != 1 || between.High != 5 {
		t.Errorf("got %+v, want {1 5}", between)
	}
}

func TestToExpectationPassesThroughConcreteValue(t *testing.T) {
	e := toExpectation(float64(42))
	if e != float64(42) {
		t.Errorf("got %v, want 42", e)
	}
}

func TestToExpectationPassesThroughNil(t *testing.T) {
	if toExpectation(nil) != nil {
		t.Error("expected nil to pass through unchanged")
	}
}
