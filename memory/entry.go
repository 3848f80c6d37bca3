package memory

import (
	"fmt"
	"path"
	"strings"
)

// Top-level namespaces for note keys.
const (
	NamespaceNotes    = "notes"
	NamespaceGlossary = "glossary"
)

// Entry is a single note. Keys are /-separated paths such as
// "glossary/revenue.md"; values are raw text.
type Entry struct {
	Key   string
	Value []byte
}

// NewEntry builds an Entry from text.
func NewEntry(key, text string) Entry {
	return Entry{Key: key, Value: []byte(text)}
}

// ValidateKey rejects keys that are empty, absolute, or escape the store
// root.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	clean := path.Clean(key)
	if clean != key || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
