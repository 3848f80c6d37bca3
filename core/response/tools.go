package response

import (
	"encoding/json"
	"fmt"
)

// ErrTimeout is the error text carried by a ToolResult whose execution
// exceeded its deadline.
const ErrTimeout = "timeout"

// Record is one result row keyed by column name.
type Record = map[string]any

// ToolResult is the outcome of a tool invocation. Results holds the rows of
// a query; Data holds the payload of tools that do not return rows (schema,
// table summary).
type ToolResult struct {
	Success bool     `json:"success"`
	Results []Record `json:"results,omitempty"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Succeeded builds a successful ToolResult holding rows.
func Succeeded(rows []Record) ToolResult {
	return ToolResult{Success: true, Results: rows}
}

// Failure builds a failed ToolResult with the given message.
func Failure(format string, args ...any) ToolResult {
	return ToolResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

// Timeout builds the failed ToolResult reported for an expired deadline.
func Timeout() ToolResult {
	return ToolResult{Success: false, Error: ErrTimeout}
}

// MarshalResults serializes the result rows for inclusion in a transcript,
// indented by two spaces. A result without rows serializes as "[]".
func (r ToolResult) MarshalResults() (string, error) {
	rows := r.Results
	if rows == nil {
		rows = []Record{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool results: %w", err)
	}
	return string(data), nil
}

// ParseToolResult parses a tool result from JSON bytes.
func ParseToolResult(body []byte) (*ToolResult, error) {
	var result ToolResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse tool result: %w", err)
	}
	return &result, nil
}
