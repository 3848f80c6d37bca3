// Package memory stores context notes that are folded into the agent's
// system turn: dataset descriptions, business glossary entries, and
// analyst guidance.
package memory

import "context"

// Store persists notes under /-separated keys. Implementations perform I/O
// on every call.
type Store interface {
	// List returns every key in the store in lexical order.
	List(ctx context.Context) ([]string, error)
	// Load retrieves the entries for keys.
	Load(ctx context.Context, keys ...string) ([]Entry, error)
	// Save creates or overwrites entries.
	Save(ctx context.Context, entries ...Entry) error
	// Delete removes entries. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
