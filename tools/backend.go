// Package tools defines the tool backend boundary and its implementations:
// an in-process handler Registry and a subprocess data server client.
package tools

import (
	"context"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// Backend executes named tools. Invoke never returns a Go error: unknown
// tools, handler failures and expired deadlines are reported as a failed
// ToolResult, with a deadline reported as response.ErrTimeout.
type Backend interface {
	List() []protocol.Tool
	Invoke(ctx context.Context, name string, args map[string]any) response.ToolResult
}
