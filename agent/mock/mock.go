// Package mock provides an in-memory Agent that replays scripted
// completions and records every call.
package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// Call records the arguments of one Complete invocation.
type Call struct {
	Messages []protocol.Message
	Tools    []protocol.Tool
}

// MockAgent returns its scripted completions in order. Once exhausted it
// returns an error completion.
type MockAgent struct {
	name        string
	completions []response.Completion
	calls       []Call
	mu          sync.Mutex
}

// Option configures a MockAgent.
type Option func(*MockAgent)

// WithName sets the agent name.
func WithName(name string) Option {
	return func(m *MockAgent) { m.name = name }
}

// WithResponses scripts successful completions with the given contents.
func WithResponses(contents ...string) Option {
	return func(m *MockAgent) {
		for _, c := range contents {
			m.completions = append(m.completions, response.Stop(c))
		}
	}
}

// WithCompletions scripts arbitrary completions.
func WithCompletions(completions ...response.Completion) Option {
	return func(m *MockAgent) {
		m.completions = append(m.completions, completions...)
	}
}

// NewMockAgent creates a MockAgent.
func NewMockAgent(opts ...Option) *MockAgent {
	m := &MockAgent{name: "mock"}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockAgent) Name() string {
	return m.name
}

func (m *MockAgent) Complete(ctx context.Context, messages []protocol.Message, tools []protocol.Tool) response.Completion {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{
		Messages: slices.Clone(messages),
		Tools:    slices.Clone(tools),
	})

	i := len(m.calls) - 1
	if i < len(m.completions) {
		return m.completions[i]
	}
	return response.Failed("no more responses configured")
}

// Calls returns a copy of the recorded calls.
func (m *MockAgent) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// CallCount returns the number of Complete invocations.
func (m *MockAgent) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
