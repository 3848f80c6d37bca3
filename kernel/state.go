package kernel

// State is a step of the question-answering loop.
type State string

const (
	StateAwaitingUserInput     State = "awaiting_user_input"
	StateAwaitingModelResponse State = "awaiting_model_response"
	StateClassifyingResponse   State = "classifying_response"
	StateExecutingTool         State = "executing_tool"
	StateAwaitingFinalResponse State = "awaiting_final_response"
	StateDone                  State = "done"
)
