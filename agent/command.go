package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
	"github.com/tailored-agentic-units/dataagent/core/response"
)

// Command runs a local model runtime as a child process per completion,
// writing the rendered prompt to stdin and reading the answer from stdout.
// The default invocation is "foundry model run <model>".
type Command struct {
	command string
	args    []string
	model   string
	timeout time.Duration
}

// NewCommand creates a Command backend from cfg.
func NewCommand(cfg *Config) *Command {
	args := make([]string, len(cfg.Args))
	for i, a := range cfg.Args {
		args[i] = strings.ReplaceAll(a, ModelPlaceholder, cfg.Model)
	}

	return &Command{
		command: cfg.Command,
		args:    args,
		model:   cfg.Model,
		timeout: cfg.timeout(),
	}
}

func (c *Command) Name() string {
	return ProviderCommand + ":" + c.command
}

func (c *Command) Complete(ctx context.Context, messages []protocol.Message, tools []protocol.Tool) response.Completion {
	execCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, c.command, c.args...)
	cmd.Stdin = strings.NewReader(RenderPrompt(messages, tools))
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		return response.Failed(fmt.Sprintf("Error calling model: %s timed out after %s", c.command, c.timeout))
	}

	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return response.Failed(fmt.Sprintf("Error calling model: %s", detail))
	}

	return response.Stop(strings.TrimSpace(stdout.String()))
}
