package dataset

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/dataagent/core/response"
	"github.com/tailored-agentic-units/dataagent/tools"
)

// RegisterTools binds the catalog's execute_query, get_schema and
// get_table_summary tools to db on the registry.
func RegisterTools(r *tools.Registry, db *DB) error {
	bindings := map[string]tools.Handler{
		tools.ExecuteQuery:    db.handleExecuteQuery,
		tools.GetSchema:       db.handleGetSchema,
		tools.GetTableSummary: db.handleGetTableSummary,
	}

	for _, tool := range tools.Catalog() {
		handler, ok := bindings[tool.Name]
		if !ok {
			continue
		}
		if err := r.Register(tool, handler); err != nil {
			return fmt.Errorf("failed to register %s: %w", tool.Name, err)
		}
	}
	return nil
}

func (d *DB) handleExecuteQuery(ctx context.Context, args map[string]any) (response.ToolResult, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return response.Failure("missing required argument: query"), nil
	}

	rows, err := d.Query(ctx, query)
	if err != nil {
		return response.ToolResult{}, err
	}
	return response.Succeeded(rows), nil
}

func (d *DB) handleGetSchema(ctx context.Context, _ map[string]any) (response.ToolResult, error) {
	schema, err := d.Schema(ctx)
	if err != nil {
		return response.ToolResult{}, err
	}
	return response.ToolResult{Success: true, Data: schema}, nil
}

func (d *DB) handleGetTableSummary(ctx context.Context, args map[string]any) (response.ToolResult, error) {
	table, _ := args["table_name"].(string)
	if table == "" {
		table = tools.DefaultTable
	}

	summary, err := d.TableSummary(ctx, table)
	if err != nil {
		return response.ToolResult{}, err
	}
	return response.ToolResult{Success: true, Data: summary}, nil
}
