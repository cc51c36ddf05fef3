package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers every MCP tool the harness exposes.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_clusters",
			mcp.WithDescription("List every loaded ZCL cluster's name (as declared in the XML), code, and define"),
		),
		s.handleListClusters,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("describe_command",
			mcp.WithDescription("Describe a cluster command's code and ordered parameter types"),
			mcp.WithString("cluster", mcp.Required(), mcp.Description("Cluster name")),
			mcp.WithString("command", mcp.Required(), mcp.Description("Command name")),
		),
		s.handleDescribeCommand,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("describe_attribute",
			mcp.WithDescription("Describe a cluster attribute's code and declared type"),
			mcp.WithString("cluster", mcp.Required(), mcp.Description("Cluster name")),
			mcp.WithString("attribute", mcp.Required(), mcp.Description("Attribute name")),
		),
		s.handleDescribeAttribute,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("form_network",
			mcp.WithDescription("Form (or confirm an existing) ZigBee network on the coordinator"),
			mcp.WithNumber("channel", mcp.Description("802.15.4 channel (default 19)")),
			mcp.WithNumber("power", mcp.Description("Radio transmit power (default 0)")),
			mcp.WithNumber("pan_id", mcp.Description("16-bit PAN id (default 0xFAFA)")),
		),
		s.handleFormNetwork,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("leave_network",
			mcp.WithDescription("Leave the current ZigBee network"),
		),
		s.handleLeaveNetwork,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("enable_permit_join",
			mcp.WithDescription("Open the network to new device joins"),
		),
		s.handleEnablePermitJoin,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("disable_permit_join",
			mcp.WithDescription("Close the network to new device joins"),
		),
		s.handleDisablePermitJoin,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("wait_for_join",
			mcp.WithDescription("Block until a device announces itself on the network, returning its node id"),
			mcp.WithNumber("timeout_seconds", mcp.Description("Seconds to wait (default 30)")),
		),
		s.handleWaitForJoin,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("send_command",
			mcp.WithDescription("Send a ZCL command to a node, given its cluster, command name, and a JSON array of positional argument values"),
			mcp.WithString("destination", mcp.Required(), mcp.Description("Destination node id, e.g. \"0x1234\"")),
			mcp.WithString("cluster", mcp.Required(), mcp.Description("Cluster name")),
			mcp.WithString("command", mcp.Required(), mcp.Description("Command name")),
			mcp.WithString("args", mcp.Description("Positional argument values, as a JSON array literal in declared order, e.g. \"[1, \\\"1234\\\"]\"")),
		),
		s.handleSendCommand,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("read_attribute",
			mcp.WithDescription("Read an attribute from a node and return its decoded value"),
			mcp.WithString("destination", mcp.Required(), mcp.Description("Destination node id, e.g. \"0x1234\"")),
			mcp.WithString("cluster", mcp.Required(), mcp.Description("Cluster name")),
			mcp.WithString("attribute", mcp.Required(), mcp.Description("Attribute name")),
			mcp.WithNumber("timeout_seconds", mcp.Description("Seconds to wait (default 10)")),
		),
		s.handleReadAttribute,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("write_attribute",
			mcp.WithDescription("Write a value to an attribute on a node"),
			mcp.WithString("destination", mcp.Required(), mcp.Description("Destination node id, e.g. \"0x1234\"")),
			mcp.WithString("cluster", mcp.Required(), mcp.Description("Cluster name")),
			mcp.WithString("attribute", mcp.Required(), mcp.Description("Attribute name")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to write, as a JSON literal (e.g. \"255\", \"true\", \"\\\"ON\\\"\")")),
		),
		s.handleWriteAttribute,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("expect_command",
			mcp.WithDescription("Wait for an incoming ZCL command and validate its payload against expectations: each element is a concrete value (Equal), null (don't care), or {\"between\":[lo,hi]}"),
			mcp.WithString("cluster", mcp.Required(), mcp.Description("Cluster name")),
			mcp.WithString("command", mcp.Required(), mcp.Description("Command name")),
			mcp.WithString("expectations", mcp.Description("Per-argument expectations, as a JSON array literal in declared order; each element is a concrete value, null, or {\"between\":[lo,hi]}")),
			mcp.WithNumber("timeout_seconds", mcp.Description("Seconds to wait (default 10)")),
		),
		s.handleExpectCommand,
	)
}
