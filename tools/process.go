package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// request is the line written to the data server's stdin.
type request struct {
	Action    string         `json:"action"`
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// ProcessBackend runs an external data server once per call. The server
// reads one JSON request line from stdin and writes a ToolResult JSON
// document to stdout:
//
//	{"action":"call_tool","tool":"execute_query","arguments":{"query":"SELECT ..."}}
//	{"success":true,"results":[{"product":"A","revenue":100}]}
type ProcessBackend struct {
	command string
	args    []string
	timeout time.Duration
}

// NewProcessBackend creates a ProcessBackend from cfg.
func NewProcessBackend(cfg *Config) (*ProcessBackend, error) {
	if cfg.Process.Command == "" {
		return nil, ErrNoCommand
	}
	return &ProcessBackend{
		command: cfg.Process.Command,
		args:    cfg.Process.Args,
		timeout: cfg.CallTimeout(),
	}, nil
}

// List returns the static catalog; the server is expected to implement it.
func (p *ProcessBackend) List() []protocol.Tool {
	return Catalog()
}

func (p *ProcessBackend) Invoke(ctx context.Context, name string, args map[string]any) response.ToolResult {
	if args == nil {
		args = map[string]any{}
	}

	line, err := json.Marshal(request{Action: "call_tool", Tool: name, Arguments: args})
	if err != nil {
		return response.Failure("Failed to call tool: %v", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(append(line, '\n'))
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		return response.Timeout()
	}
	if err != nil || stdout.Len() == 0 {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" && err != nil {
			detail = err.Error()
		}
		if detail == "" {
			detail = "empty response"
		}
		return response.Failure("Data server error: %s", detail)
	}

	result, err := response.ParseToolResult(stdout.Bytes())
	if err != nil {
		return response.Failure("Data server error: %v", err)
	}
	return *result
}
