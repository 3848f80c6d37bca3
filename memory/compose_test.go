package memory_test

import (
	"context"
	"testing"

	"github.com/tailored-agentic-units/dataagent/memory"
)

func TestCompose(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "notes/sales.md", "Revenue is stored in USD.\n")
	writeTestFile(t, root, "glossary/region.md", "Regions: East, West, North, South.")
	writeTestFile(t, root, "notes/empty.md", "   \n")

	got, err := memory.Compose(context.Background(), memory.NewFileStore(root))
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	want := "Context notes:\n\n[glossary/region.md]\nRegions: East, West, North, South.\n\n[notes/sales.md]\nRevenue is stored in USD."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCompose_Empty(t *testing.T) {
	tests := []struct {
		name  string
		store memory.Store
	}{
		{"nil store", nil},
		{"empty store", memory.NewFileStore(t.TempDir())},
		{"blank notes only", blankNotes(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := memory.Compose(context.Background(), tt.store)
			if err != nil {
				t.Fatalf("Compose() error = %v", err)
			}
			if got != "" {
				t.Errorf("got %q, want empty", got)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key   string
		valid bool
	}{
		{"notes/sales.md", true},
		{"glossary.md", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../x", false},
		{"/abs", false},
		{"notes//double.md", false},
		{"notes/./x.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := memory.ValidateKey(tt.key)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateKey(%q) error = %v, want valid=%v", tt.key, err, tt.valid)
			}
		})
	}
}

func blankNotes(t *testing.T) memory.Store {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, root, "notes/empty.md", "")
	writeTestFile(t, root, "glossary/space.md", "  \n\t\n")
	return memory.NewFileStore(root)
}
