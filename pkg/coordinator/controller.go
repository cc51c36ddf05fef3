// Package coordinator implements the controller protocol engine that
// drives a ZigBee coordinator's text console: network lifecycle
// commands, ZCL command dispatch, attribute read/write, and payload
// expectation — all built on pkg/transport and pkg/zcl.
package coordinator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/urmzd/zcl-harness/pkg/transport"
	"github.com/urmzd/zcl-harness/pkg/zcl"
)

// NetworkState is the coordinator's network-membership state, as
// observed from command replies — never cached authoritatively beyond
// the last reply seen.
type NetworkState int

const (
	StateOffline NetworkState = iota
	StateInNetwork
	StateOutOfNetwork
)

func (s NetworkState) String() string {
	switch s {
	case StateOffline:
		return "OFFLINE"
	case StateInNetwork:
		return "IN_NETWORK"
	case StateOutOfNetwork:
		return "OUT_OF_NETWORK"
	default:
		return "UNKNOWN"
	}
}

const (
	defaultNetworkTimeout = 2 * time.Second
	defaultZCLTimeout     = 10 * time.Second
)

// Controller owns one Transport and one outgoing ZCL sequence counter.
// It is single-threaded, cooperative, and strictly blocking: methods
// that wait for a reply write their line(s) then block on the transport
// up to the caller-supplied (or default) timeout; the send/write/bind
// methods only write and return. It is not safe for concurrent
// use by multiple goroutines — Session (session.go) provides that.
type Controller struct {
	transport transport.Transport

	sequence uint8

	state          NetworkState
	permitJoinOpen bool
}

// NewController returns a Controller observed as OFFLINE until its
// first network operation.
func NewController(t transport.Transport) *Controller {
	return &Controller{transport: t, state: StateOffline}
}

// Sequence returns the current outgoing frame sequence number.
func (c *Controller) Sequence() uint8 { return c.sequence }

// State returns the controller's last-observed network state.
func (c *Controller) State() NetworkState { return c.state }

// PermitJoinOpen reports whether permit-join was last observed open.
func (c *Controller) PermitJoinOpen() bool { return c.permitJoinOpen }

var networkStatusPattern = func(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + ` (0x[0-9A-Fa-f]{2})$`)
}

func parseStatusByte(hex string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "0x"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("parse status byte %q: %w", hex, err)
	}
	return byte(v), nil
}

// FormNetwork forms (or confirms an existing) ZigBee network.
func (c *Controller) FormNetwork(channel, power uint8, panID uint16) error {
	line := fmt.Sprintf("network form %d %d 0x%04x", channel, power, panID)
	if err := c.transport.WriteLine(line); err != nil {
		return fmt.Errorf("write network form: %w", err)
	}

	_, groups, err := c.transport.Expect([]*regexp.Regexp{networkStatusPattern("form")}, defaultNetworkTimeout)
	if err != nil {
		return c.wrapExpectErr(err, "network form reply")
	}
	status, err := parseStatusByte(groups[1])
	if err != nil {
		return err
	}

	switch status {
	case 0x00, 0x70:
		c.state = StateInNetwork
		return nil
	default:
		return &UnhandledStatusError{Command: "network form", Status: status}
	}
}

// LeaveNetwork leaves the current network, waiting for the coordinator
// to confirm it has dropped off the network.
func (c *Controller) LeaveNetwork() error {
	if err := c.transport.WriteLine("network leave"); err != nil {
		return fmt.Errorf("write network leave: %w", err)
	}

	_, groups, err := c.transport.Expect([]*regexp.Regexp{networkStatusPattern("leave")}, defaultNetworkTimeout)
	if err != nil {
		return c.wrapExpectErr(err, "network leave reply")
	}
	status, err := parseStatusByte(groups[1])
	if err != nil {
		return err
	}

	switch status {
	case 0x70:
		c.state = StateOutOfNetwork
		return nil
	case 0x00:
		if _, err := c.transport.ReadUntil("EMBER_NETWORK_DOWN", defaultNetworkTimeout); err != nil {
			return c.wrapExpectErr(err, "EMBER_NETWORK_DOWN")
		}
		c.state = StateOutOfNetwork
		return nil
	default:
		return &UnhandledStatusError{Command: "network leave", Status: status}
	}
}

func (c *Controller) setPermitJoin(open bool) error {
	arg := "0x00"
	prefix := "pJoin for 0 sec:"
	if open {
		arg = "0xff"
		prefix = "pJoin for 255 sec:"
	}

	if err := c.transport.WriteLine(fmt.Sprintf("network pjoin %s", arg)); err != nil {
		return fmt.Errorf("write network pjoin: %w", err)
	}

	_, groups, err := c.transport.Expect([]*regexp.Regexp{networkStatusPattern(prefix)}, defaultNetworkTimeout)
	if err != nil {
		return c.wrapExpectErr(err, "pjoin reply")
	}
	status, err := parseStatusByte(groups[1])
	if err != nil {
		return err
	}
	if status != 0x00 {
		return &NetworkOperationError{Command: "network pjoin", Status: status}
	}

	c.permitJoinOpen = open
	return nil
}

// EnablePermitJoin opens the network to new device joins for 255s.
func (c *Controller) EnablePermitJoin() error { return c.setPermitJoin(true) }

// DisablePermitJoin closes the network to new device joins.
func (c *Controller) DisablePermitJoin() error { return c.setPermitJoin(false) }

var deviceAnnouncePattern = regexp.MustCompile(`Device Announce: (0x[0-9A-Fa-f]{4})`)

// WaitForJoin blocks until a device announces itself on the network and
// returns its 16-bit node id.
func (c *Controller) WaitForJoin(timeout time.Duration) (uint16, error) {
	_, groups, err := c.transport.Expect([]*regexp.Regexp{deviceAnnouncePattern}, timeout)
	if err != nil {
		return 0, c.wrapExpectErr(err, "Device Announce")
	}
	nodeID, err := strconv.ParseUint(strings.TrimPrefix(groups[1], "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("parse announced node id %q: %w", groups[1], err)
	}
	return uint16(nodeID), nil
}

// SendZCLCommand encodes inv's args in order, emits the raw frame and
// send lines, and advances the sequence counter by one (mod 256). A
// write error aborts before the counter advances.
func (c *Controller) SendZCLCommand(destination uint16, inv *zcl.Invocation) error {
	payload, err := encodeArgs(inv.Args)
	if err != nil {
		return err
	}

	frameControl := byte(0x01) // cluster-specific, client->server, no manufacturer code, default response enabled

	fields := []string{fmt.Sprintf("%02X", frameControl), fmt.Sprintf("%02X", c.sequence), fmt.Sprintf("%02X", inv.Code)}
	for _, b := range payload {
		fields = append(fields, fmt.Sprintf("%02X", b))
	}

	raw := fmt.Sprintf("raw 0x%04X {%s}", inv.ClusterCode, strings.Join(fields, " "))
	if err := c.transport.WriteLine(raw); err != nil {
		return fmt.Errorf("write raw zcl frame: %w", err)
	}
	if err := c.transport.WriteLine(fmt.Sprintf("send 0x%04X 1 1", destination)); err != nil {
		return fmt.Errorf("write send: %w", err)
	}

	c.sequence = (c.sequence + 1) & 0xFF
	return nil
}

// SendZCLOTANotify emits an OTA server-notify command. Unlike
// SendZCLCommand, args are serialised as space-separated 16-bit hex
// words — the console's idiosyncratic form for this one command.
func (c *Controller) SendZCLOTANotify(destination uint16, inv *zcl.Invocation) error {
	words := make([]string, 0, len(inv.Args))
	for _, arg := range inv.Args {
		v, ok := zcl.AsInt64(arg.Value)
		if !ok {
			return fmt.Errorf("ota notify arg %q: value %v is not numeric", arg.Name, arg.Value)
		}
		words = append(words, fmt.Sprintf("0x%04X", uint16(v)))
	}

	line := fmt.Sprintf("zcl ota server notify 0x%04X 01", destination)
	if len(words) > 0 {
		line += " " + strings.Join(words, " ")
	}
	return c.transport.WriteLine(line)
}

// WriteAttribute encodes value under attr's declared type and writes it
// to destination.
func (c *Controller) WriteAttribute(destination uint16, attr *zcl.Attribute, value any) error {
	payload, err := zcl.Encode(attr.Type, value)
	if err != nil {
		return fmt.Errorf("encode attribute %s: %w", attr.Name, err)
	}

	line := fmt.Sprintf("zcl global write %d %d %d {%s}", attr.ClusterCode, attr.Code, attr.TypeCode, formatHexBytes(payload))
	if err := c.transport.WriteLine(line); err != nil {
		return fmt.Errorf("write attribute write: %w", err)
	}
	return c.transport.WriteLine(fmt.Sprintf("send 0x%04X 1 1", destination))
}

// ReadAttribute reads attr from destination and returns its decoded
// value, whose dynamic Go type matches attr's declared ZCL type.
func (c *Controller) ReadAttribute(destination uint16, attr *zcl.Attribute, timeout time.Duration) (any, error) {
	if err := c.transport.WriteLine(fmt.Sprintf("zcl global read %d %d", attr.ClusterCode, attr.Code)); err != nil {
		return nil, fmt.Errorf("write attribute read: %w", err)
	}
	if err := c.transport.WriteLine(fmt.Sprintf("send 0x%04X 1 1", destination)); err != nil {
		return nil, fmt.Errorf("write send: %w", err)
	}

	frame, err := c.expectRxFrame(attr.ClusterCode, 0x01, timeout)
	if err != nil {
		return nil, c.wrapExpectErr(err, fmt.Sprintf("read-attributes-response for %s", attr.Name))
	}

	cur := zcl.NewCursor(frame.Payload)
	attributeID, err := zcl.Decode(zcl.Int16U, cur)
	if err != nil {
		return nil, fmt.Errorf("decode attribute id: %w", err)
	}
	statusVal, err := zcl.Decode(zcl.Int8U, cur)
	if err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	status := byte(statusVal.(uint64))
	if status != 0 {
		return nil, &AttributeReadFailure{ClusterCode: attr.ClusterCode, AttrCode: uint16(attributeID.(uint64)), Status: status}
	}

	if _, err := zcl.Decode(zcl.Int8U, cur); err != nil { // type code, not re-derived from the wire
		return nil, fmt.Errorf("decode type code: %w", err)
	}

	return zcl.Decode(attr.Type, cur)
}

// ExpectZCLCommand drains stale buffered input, then blocks for an RX
// frame matching inv's cluster and command, decoding and validating its
// payload against inv's args in order.
func (c *Controller) ExpectZCLCommand(inv *zcl.Invocation, timeout time.Duration) error {
	c.transport.ReadEager()

	frame, err := c.expectRxFrame(inv.ClusterCode, inv.Code, timeout)
	if err != nil {
		return &zcl.AssertionFailure{ArgName: inv.Name, Expected: "a matching frame", Received: err.Error()}
	}

	cur := zcl.NewCursor(frame.Payload)
	received := make([]any, len(inv.Args))
	for i, arg := range inv.Args {
		v, err := zcl.Decode(arg.Type, cur)
		if err != nil {
			return fmt.Errorf("decode arg %q: %w", arg.Name, err)
		}
		received[i] = v
	}

	return zcl.ValidatePayload(inv.Args, received)
}

// BindNode emits a ZDO bind request to nodeID for clusterID, naming the
// device by its IEEE address ieeeHex, so the coordinator accepts that
// cluster's reports from it.
func (c *Controller) BindNode(nodeID uint16, ieeeHex string, clusterID uint16) error {
	line := fmt.Sprintf("zdo bind %d 1 1 %d {%s} {}", nodeID, clusterID, ieeeHex)
	return c.transport.WriteLine(line)
}

// ConfigureReporting is a thin pass-through: args are joined with spaces
// after the subcommand name. The exact tail shape is left to the caller
// since reporting configuration parameters vary by cluster and attribute.
func (c *Controller) ConfigureReporting(nodeID uint16, args ...string) error {
	line := fmt.Sprintf("zcl global send-me-a-report %d", nodeID)
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	return c.transport.WriteLine(line)
}

// MakeServer flips subsequent global commands to target the server side
// of a cluster.
func (c *Controller) MakeServer() error { return c.transport.WriteLine("zcl global direction 1") }

// MakeClient flips subsequent global commands to target the client side
// of a cluster.
func (c *Controller) MakeClient() error { return c.transport.WriteLine("zcl global direction 0") }

// expectRxFrame blocks until an RX line arrives whose cluster and
// command match, parsing it via parseRxFrame. Non-matching RX lines
// (and non-RX lines) are skipped rather than failing the wait, mirroring
// expect's one-shot regex semantics over a possibly noisy console.
func (c *Controller) expectRxFrame(clusterCode uint16, cmd uint8, timeout time.Duration) (*RxFrame, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, transport.ErrTimeout
		}
		_, groups, err := c.transport.Expect([]*regexp.Regexp{rxLinePattern}, remaining)
		if err != nil {
			return nil, err
		}
		frame, ok := parseRxFrame(groups[0])
		if !ok {
			continue
		}
		if frame.ClusterCode == clusterCode && frame.Cmd == cmd {
			return frame, nil
		}
		log.Debug().Uint16("cluster", frame.ClusterCode).Uint8("cmd", frame.Cmd).Msg("skipping non-matching RX frame")
	}
}

func (c *Controller) wrapExpectErr(err error, waitingFor string) error {
	if err == transport.ErrTimeout {
		return &TimeoutError{Waiting: waitingFor}
	}
	return err
}

func encodeArgs(args []zcl.CommandArg) ([]byte, error) {
	var out []byte
	for _, arg := range args {
		b, err := zcl.Encode(arg.Type, arg.Value)
		if err != nil {
			return nil, fmt.Errorf("encode arg %q: %w", arg.Name, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func formatHexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}
