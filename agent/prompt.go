package agent

import (
	"strings"

	"github.com/tailored-agentic-units/dataagent/core/protocol"
)

// RenderToolSummary lists the catalog as "- name: description" lines under
// an "Available Tools:" header. Returns "" for an empty catalog.
func RenderToolSummary(tools []protocol.Tool) string {
	if len(tools) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Available Tools:\n")
	for _, t := range tools {
		b.WriteString("- ")
		b.WriteString(t.Name)
		b.WriteString(": ")
		b.WriteString(t.Description)
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderPrompt flattens a transcript into a single completion prompt for
// runtimes that take plain text:
//
//	System: ...
//
//	Available Tools:
//	- execute_query: ...
//
//	Conversation:
//	User: ...
//	Assistant: ...
//
//	Assistant:
func RenderPrompt(messages []protocol.Message, tools []protocol.Tool) string {
	var b strings.Builder

	for _, msg := range messages {
		if msg.Role == protocol.RoleSystem {
			b.WriteString("System: ")
			b.WriteString(msg.Content)
			b.WriteByte('\n')
		}
	}

	if summary := RenderToolSummary(tools); summary != "" {
		b.WriteByte('\n')
		b.WriteString(summary)
	}

	b.WriteString("\nConversation:\n")
	for _, msg := range messages {
		switch msg.Role {
		case protocol.RoleUser:
			b.WriteString("User: ")
		case protocol.RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			continue
		}
		b.WriteString(msg.Content)
		b.WriteByte('\n')
	}

	b.WriteString("\nAssistant:")
	return b.String()
}

// withToolSummary folds the tool summary into the system turn so chat
// endpoints without function calling still see the catalog.
func withToolSummary(messages []protocol.Message, tools []protocol.Tool) []protocol.Message {
	summary := RenderToolSummary(tools)
	if summary == "" {
		return messages
	}

	out := make([]protocol.Message, len(messages))
	copy(out, messages)
	for i, msg := range out {
		if msg.Role == protocol.RoleSystem {
			out[i].Content = msg.Content + "\n\n" + strings.TrimRight(summary, "\n")
			return out
		}
	}

	return append([]protocol.Message{protocol.NewMessage(protocol.RoleSystem, strings.TrimRight(summary, "\n"))}, out...)
}
