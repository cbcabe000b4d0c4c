// Package sdk provides a typed Go client for the Agent Hub MCP server.
//
// The client wraps mcp-go/client.CallTool with one method per MCP tool
// and retries transport failures via fortify.
//
// Usage:
//
//	transport, _ := client.NewStdioTransport("agenthub", "mcp")
//	c := sdk.NewClient(transport)
//	defer c.Close()
//
//	_, _ = c.Initialize(ctx)
//	res, _ := c.Send(ctx, "Quero criar um agente de cobrança", true)
//	fmt.Println(res.Reply.Content)
package sdk
