// Package session holds the conversation transcript of a data agent.
package session

import (
	"github.com/tailored-agentic-units/dataagent/core/protocol"
)

// Session holds the ordered user and assistant turns of a conversation.
// The system turn is owned by the caller. Implementations must be safe for
// concurrent use.
type Session interface {
	// ID returns the unique session identifier.
	ID() string
	// AddMessage appends a turn to the transcript.
	AddMessage(msg protocol.Message)
	// Messages returns a copy of the transcript.
	Messages() []protocol.Message
	// Len returns the number of turns held.
	Len() int
	// DropOldest discards the n oldest turns.
	DropOldest(n int)
	// Clear resets the transcript.
	Clear()
}
