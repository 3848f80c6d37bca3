package protocol

// Tool describes a capability advertised to the inference backend.
// Parameters uses JSON Schema format to describe the tool's input.
// Descriptors are static and shared read-only.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall is a request to run a named tool, extracted from one assistant
// turn. It is discarded once the tool has executed.
type ToolCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// NewToolCall creates a ToolCall for name with the given arguments.
func NewToolCall(name string, args map[string]any) ToolCall {
	if args == nil {
		args = map[string]any{}
	}
	return ToolCall{Name: name, Arguments: args}
}
