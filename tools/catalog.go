package tools

import "github.com/tailored-agentic-units/dataagent/core/protocol"

// Tool names of the dataset catalog.
const (
	ExecuteQuery    = "execute_query"
	GetSchema       = "get_schema"
	GetTableSummary = "get_table_summary"
)

// DefaultTable is summarized when get_table_summary receives no table_name.
const DefaultTable = "sales"

var catalog = []protocol.Tool{
	{
		Name:        ExecuteQuery,
		Description: "Execute a read-only SQL SELECT query on the sales database to retrieve data. Use this to answer questions about sales, products, regions, and revenue.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "SQL SELECT query to execute. Only SELECT statements are allowed. Example: SELECT * FROM sales WHERE region = 'East' LIMIT 10",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        GetSchema,
		Description: "Get the database schema showing all tables and their columns. Use this to understand what data is available before querying.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	},
	{
		Name:        GetTableSummary,
		Description: "Get summary statistics and sample data for a table. Useful for understanding the structure and content of a table.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"table_name": map[string]any{
					"type":        "string",
					"description": "Name of the table to summarize (default: sales)",
				},
			},
			"required": []string{},
		},
	},
}

// Catalog returns the static tool descriptors advertised to the model.
// The returned slice is a copy; descriptors share their Parameters maps and
// must be treated as read-only.
func Catalog() []protocol.Tool {
	out := make([]protocol.Tool, len(catalog))
	copy(out, catalog)
	return out
}

// Descriptor returns the catalog entry for name.
func Descriptor(name string) (protocol.Tool, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return protocol.Tool{}, false
}
