package kernel

import "github.com/tailored-agentic-units/dataagent/observability"

// Kernel event types emitted while answering a question.
const (
	EventRunStart      observability.EventType = "kernel.run.start"
	EventModelRequest  observability.EventType = "kernel.model.request"
	EventModelResponse observability.EventType = "kernel.model.response"
	EventClassify      observability.EventType = "kernel.classify"
	EventToolCall      observability.EventType = "kernel.tool.call"
	EventToolComplete  observability.EventType = "kernel.tool.complete"
	EventResponse      observability.EventType = "kernel.response"
	EventError         observability.EventType = "kernel.error"
)
