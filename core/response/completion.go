// Package response defines the values returned across the two backend
// boundaries: inference completions and tool results.
package response

// FinishReason reports how an inference call ended.
type FinishReason string

const (
	FinishStop  FinishReason = "stop"
	FinishError FinishReason = "error"
)

// Completion is the outcome of one inference call. Backends never return
// Go errors; a failed call carries a human-readable error in Content and
// FinishReason set to FinishError.
type Completion struct {
	Content      string       `json:"content"`
	FinishReason FinishReason `json:"finish_reason"`
}

// Stop builds a successful Completion.
func Stop(content string) Completion {
	return Completion{Content: content, FinishReason: FinishStop}
}

// Failed builds an error Completion from a message.
func Failed(content string) Completion {
	return Completion{Content: content, FinishReason: FinishError}
}

// IsError reports whether the completion represents a backend failure.
func (c Completion) IsError() bool {
	return c.FinishReason == FinishError
}
