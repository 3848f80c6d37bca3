package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/dataagent/core/response"
	"github.com/tailored-agentic-units/dataagent/tools"
)

func newSchemaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the dataset schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := opts.kernel()
			if err != nil {
				return err
			}
			defer k.Close()

			return printToolResult(cmd, k.GetSchema(cmd.Context()))
		},
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [table]",
		Short: "Print row count, columns and sample rows of a table",
		Long:  "Print row count, columns and sample rows of a table (default " + tools.DefaultTable + ").",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := opts.kernel()
			if err != nil {
				return err
			}
			defer k.Close()

			var table string
			if len(args) == 1 {
				table = args[0]
			}
			return printToolResult(cmd, k.GetTableSummary(cmd.Context(), table))
		},
	}
}

func printToolResult(cmd *cobra.Command, result response.ToolResult) error {
	if !result.Success {
		cmd.PrintErrln(errorStyle.Render("Error: " + result.Error))
		return errors.New(result.Error)
	}
	return printToolData(cmd, result.Data)
}
