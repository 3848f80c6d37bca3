package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// Handler is the function signature for tool implementations.
// Handlers receive the deadline-bound context and the decoded arguments.
type Handler func(ctx context.Context, args map[string]any) (response.ToolResult, error)

type entry struct {
	tool    protocol.Tool
	handler Handler
}

// Registry dispatches tool calls to registered handlers. Each Invoke runs
// under the registry timeout. Safe for concurrent use.
type Registry struct {
	entries map[string]entry
	timeout time.Duration
	mu      sync.RWMutex
}

// NewRegistry creates an empty Registry. A non-positive timeout disables
// the per-call deadline.
func NewRegistry(timeout time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]entry),
		timeout: timeout,
	}
}

// Register adds a new tool. Returns ErrAlreadyExists if a tool with the
// same name is already registered; use Replace to update it.
func (r *Registry) Register(tool protocol.Tool, handler Handler) error {
	if tool.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, tool.Name)
	}

	r.entries[tool.Name] = entry{tool: tool, handler: handler}
	return nil
}

// Replace updates an existing tool's definition and handler.
// Returns ErrNotFound if no tool with the given name is registered.
func (r *Registry) Replace(tool protocol.Tool, handler Handler) error {
	if tool.Name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[tool.Name]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, tool.Name)
	}

	r.entries[tool.Name] = entry{tool: tool, handler: handler}
	return nil
}

// Get retrieves a handler by tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, false
	}
	return e.handler, true
}

// List returns the definitions of all registered tools sorted by name.
func (r *Registry) List() []protocol.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]protocol.Tool, 0, len(r.entries))
	for _, e := range r.entries {
		tools = append(tools, e.tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Execute dispatches a tool call and returns Go errors: ErrNotFound for an
// unregistered tool, and handler errors wrapped with the tool name.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (response.ToolResult, error) {
	r.mu.RLock()
	e, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		return response.ToolResult{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if args == nil {
		args = map[string]any{}
	}

	result, err := e.handler(ctx, args)
	if err != nil {
		// drivers report an interrupted statement in their own terms
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = context.DeadlineExceeded
		}
		return response.ToolResult{}, fmt.Errorf("tool %s execution failed: %w", name, err)
	}
	return result, nil
}

// Invoke implements Backend by converting Execute errors into failed
// results.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) response.ToolResult {
	result, err := r.Execute(ctx, name, args)
	if err != nil {
		return FailureFromError(err)
	}
	return result
}

// FailureFromError converts an execution error into a failed ToolResult.
// Deadline errors become response.ErrTimeout.
func FailureFromError(err error) response.ToolResult {
	if errors.Is(err, context.DeadlineExceeded) {
		return response.Timeout()
	}
	return response.Failure("%v", err)
}
