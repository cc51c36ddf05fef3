package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/urmzd/zcl-harness/pkg/zcl"
)

func (s *Server) handleListClusters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := ListClustersOutput{Clusters: make([]ClusterInfo, 0, len(s.schema.Clusters))}
	for _, c := range s.schema.Clusters {
		out.Clusters = append(out.Clusters, ClusterInfo{Name: c.Name, Code: int(c.Code), Define: c.Define})
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleDescribeCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cluster, proto, err := s.lookupCommand(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := make([]ParamInfo, len(proto.Params))
	for i, p := range proto.Params {
		params[i] = ParamInfo{Name: p.Name, Type: string(p.Type)}
	}

	out := DescribeCommandOutput{Command: CommandInfo{
		Cluster: cluster.Name,
		Name:    proto.Name,
		Code:    int(proto.Code),
		Params:  params,
	}}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleDescribeAttribute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cluster, attr, err := s.lookupAttribute(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := DescribeAttributeOutput{Attribute: AttributeInfo{
		Cluster: cluster.Name,
		Name:    attr.Name,
		Code:    int(attr.Code),
		Type:    string(attr.Type),
	}}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleFormNetwork(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	channel := optionalNumber(request, "channel", 19)
	power := optionalNumber(request, "power", 0)
	panID := optionalNumber(request, "pan_id", 0xFAFA)

	if err := s.session.FormNetwork(uint8(channel), uint8(power), uint16(panID)); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to form network: %s", err)), nil
	}

	out := FormNetworkOutput{Success: true, Message: "network formed"}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleLeaveNetwork(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.session.LeaveNetwork(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to leave network: %s", err)), nil
	}
	out := LeaveNetworkOutput{Success: true, Message: "network left"}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleEnablePermitJoin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.session.EnablePermitJoin(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to enable permit join: %s", err)), nil
	}
	out := PermitJoinOutput{Success: true, Message: "permit join enabled"}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleDisablePermitJoin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.session.DisablePermitJoin(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to disable permit join: %s", err)), nil
	}
	out := PermitJoinOutput{Success: true, Message: "permit join disabled"}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleWaitForJoin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timeout := time.Duration(optionalNumber(request, "timeout_seconds", 30)) * time.Second

	nodeID, err := s.session.WaitForJoin(timeout)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no device joined: %s", err)), nil
	}

	out := WaitForJoinOutput{NodeID: fmt.Sprintf("0x%04X", nodeID)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSendCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	destination, err := requiredNodeID(request, "destination")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, proto, err := s.lookupCommand(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rawArgs := optionalJSON(request, "args", "[]")
	if err := s.checker.Validate(proto, rawArgs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var values []any
	if err := json.Unmarshal(rawArgs, &values); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid args: %s", err)), nil
	}

	inv, err := proto.Bind(values...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.session.SendZCLCommand(destination, inv); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to send command: %s", err)), nil
	}

	out := SendCommandOutput{Success: true, Message: fmt.Sprintf("sent %s to 0x%04X", proto.Name, destination)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleReadAttribute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	destination, err := requiredNodeID(request, "destination")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, attr, err := s.lookupAttribute(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeout := time.Duration(optionalNumber(request, "timeout_seconds", 10)) * time.Second

	value, err := s.session.ReadAttribute(destination, attr, timeout)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read attribute: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(ReadAttributeOutput{Value: value})), nil
}

func (s *Server) handleWriteAttribute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	destination, err := requiredNodeID(request, "destination")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, attr, err := s.lookupAttribute(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawValue, err := requiredString(request, "value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var value any
	if err := json.Unmarshal([]byte(rawValue), &value); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid value literal: %s", err)), nil
	}

	if err := s.session.WriteAttribute(destination, attr, value); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write attribute: %s", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(WriteAttributeOutput{Success: true})), nil
}

func (s *Server) handleExpectCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, proto, err := s.lookupCommand(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeout := time.Duration(optionalNumber(request, "timeout_seconds", 10)) * time.Second

	rawExpectations := optionalJSON(request, "expectations", "[]")
	var raw []any
	if err := json.Unmarshal(rawExpectations, &raw); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid expectations: %s", err)), nil
	}

	expectations := make([]any, len(raw))
	for i, e := range raw {
		expectations[i] = toExpectation(e)
	}

	inv, err := proto.BindExpectation(expectations...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.session.ExpectZCLCommand(inv, timeout); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("expectation not met: %s", err)), nil
	}

	out := ExpectCommandOutput{Success: true, Message: fmt.Sprintf("received matching %s", proto.Name)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// toExpectation converts a JSON-decoded expectation element into the form
// CommandPrototype.BindExpectation understands: nil stays nil, a
// {"between": [lo, hi]} object becomes a zcl.Between, anything else is
// passed through as a concrete value to compare by equality.
func toExpectation(e any) any {
	m, ok := e.(map[string]any)
	if !ok {
		return e
	}
	bounds, ok := m["between"].([]any)
	if !ok || len(bounds) != 2 {
		return e
	}
	low, lok := zcl.AsInt64(bounds[0])
	high, hok := zcl.AsInt64(bounds[1])
	if !lok || !hok {
		return e
	}
	return zcl.Between{Low: low, High: high}
}

// --- helpers ---

func (s *Server) lookupCommand(request mcp.CallToolRequest) (*zcl.Cluster, *zcl.CommandPrototype, error) {
	clusterName, err := requiredString(request, "cluster")
	if err != nil {
		return nil, nil, err
	}
	commandName, err := requiredString(request, "command")
	if err != nil {
		return nil, nil, err
	}

	cluster, ok := s.schema.Cluster(clusterName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown cluster: %s", clusterName)
	}
	proto, ok := cluster.Command(commandName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown command %q on cluster %q", commandName, clusterName)
	}
	return cluster, proto, nil
}

func (s *Server) lookupAttribute(request mcp.CallToolRequest) (*zcl.Cluster, *zcl.Attribute, error) {
	clusterName, err := requiredString(request, "cluster")
	if err != nil {
		return nil, nil, err
	}
	attrName, err := requiredString(request, "attribute")
	if err != nil {
		return nil, nil, err
	}

	cluster, ok := s.schema.Cluster(clusterName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown cluster: %s", clusterName)
	}
	attr, ok := cluster.AttributeByName(attrName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown attribute %q on cluster %q", attrName, clusterName)
	}
	return cluster, attr, nil
}

func requiredNodeID(request mcp.CallToolRequest, key string) (uint16, error) {
	s, err := requiredString(request, key)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("parameter %q is not a valid node id: %w", key, err)
	}
	return uint16(id), nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return str, nil
}

func optionalNumber(request mcp.CallToolRequest, key string, fallback float64) float64 {
	v, ok := request.GetArguments()[key]
	if !ok {
		return fallback
	}
	n, ok := v.(float64)
	if !ok {
		return fallback
	}
	return n
}

// optionalJSON returns the raw JSON text of a caller-supplied
// string-encoded parameter, or fallback if the parameter wasn't given.
func optionalJSON(request mcp.CallToolRequest, key, fallback string) json.RawMessage {
	v, ok := request.GetArguments()[key]
	if !ok {
		return json.RawMessage(fallback)
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return json.RawMessage(fallback)
	}
	return json.RawMessage(str)
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
