// Package classify decides whether a model response is a direct answer or a
// request to run a query, using the textual tool-call convention the system
// turn teaches the model:
//
//	SELECT product FROM sales;
//	TOOL_CALL: execute_query | SELECT product FROM sales
//
// Classification is pure and deterministic. A bare SELECT line takes
// precedence over a TOOL_CALL marker anywhere in the text.
package classify

import "strings"

// Marker introduces an explicit tool call in free text.
const Marker = "TOOL_CALL:"

const selectKeyword = "SELECT"

// Kind is the classification outcome.
type Kind int

const (
	DirectAnswer Kind = iota
	ToolCall
)

func (k Kind) String() string {
	switch k {
	case ToolCall:
		return "tool_call"
	default:
		return "direct_answer"
	}
}

// Decision is the result of classifying one response.
type Decision struct {
	Kind Kind
	// Text is the raw response, returned verbatim for direct answers.
	Text string
	// Tool is the tool name written before "|" in a TOOL_CALL marker.
	// Empty for bare SELECT lines.
	Tool string
	// Query is the extracted SQL text for tool calls.
	Query string
}

// IsToolCall reports whether the decision requests a query.
func (d Decision) IsToolCall() bool {
	return d.Kind == ToolCall
}

// Classify inspects text and returns a Decision. Anything that does not
// yield a non-empty query is a direct answer.
func Classify(text string) Decision {
	if query, ok := selectLine(text); ok && query != "" {
		return Decision{Kind: ToolCall, Text: text, Query: query}
	}

	if tool, query, ok := toolCallMarker(text); ok && query != "" {
		return Decision{Kind: ToolCall, Text: text, Tool: tool, Query: query}
	}

	return Decision{Kind: DirectAnswer, Text: text}
}

// ExtractQuery returns the query Classify would execute, or "" when the
// text is a direct answer.
func ExtractQuery(text string) string {
	return Classify(text).Query
}

func selectLine(text string) (string, bool) {
	for line := range strings.SplitSeq(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(strings.ToUpper(trimmed), selectKeyword) {
			continue
		}
		return strings.TrimSpace(strings.TrimSuffix(trimmed, ";")), true
	}
	return "", false
}

func toolCallMarker(text string) (tool, query string, ok bool) {
	_, rest, found := strings.Cut(text, Marker)
	if !found {
		return "", "", false
	}

	name, arg, found := strings.Cut(strings.TrimSpace(rest), "|")
	if !found {
		return "", "", false
	}

	return strings.TrimSpace(name), strings.TrimSpace(arg), true
}
