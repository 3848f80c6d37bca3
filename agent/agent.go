// Package agent provides the inference backends the kernel consults.
//
// Backends turn a transcript (and optionally the tool catalog) into a
// free-text Completion. They never return Go errors: transport failures,
// timeouts and non-zero exits surface as a Completion whose FinishReason is
// response.FinishError.
//
//	a, err := agent.New(&cfg)
//	c := a.Complete(ctx, messages, tools.Catalog())
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI  = "openai"
	ProviderCommand = "command"
)

// Agent is an inference backend. tools may be nil; when present it is
// context for the prompt, not a structured calling API.
type Agent interface {
	Name() string
	Complete(ctx context.Context, messages []protocol.Message, tools []protocol.Tool) response.Completion
}

// New creates an Agent for the configured provider.
func New(cfg *Config) (Agent, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderCommand:
		if cfg.Command == "" {
			return nil, ErrMissingCommand
		}
		return NewCommand(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
