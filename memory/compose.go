package memory

import (
	"context"
	"strings"
)

// NotesHeader introduces the composed notes in the system turn.
const NotesHeader = "Context notes:"

// Compose loads every entry in store and renders them as a single block
// for the system turn, one "[key]" section per entry in key order.
// Returns "" when the store is nil or holds no non-blank notes.
func Compose(ctx context.Context, store Store) (string, error) {
	if store == nil {
		return "", nil
	}

	keys, err := store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(keys) == 0 {
		return "", nil
	}

	entries, err := store.Load(ctx, keys...)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range entries {
		text := strings.TrimSpace(string(e.Value))
		if text == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(NotesHeader)
		}
		b.WriteString("\n\n[")
		b.WriteString(e.Key)
		b.WriteString("]\n")
		b.WriteString(text)
	}
	return b.String(), nil
}
