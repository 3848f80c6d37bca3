package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := opts.kernel()
			if err != nil {
				return err
			}
			defer k.Close()

			question := strings.Join(args, " ")
			if !asJSON {
				answer(cmd.Context(), cmd.OutOrStdout(), k, question)
				return nil
			}

			result := k.Run(cmd.Context(), question)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"question":        question,
				"decision":        result.Decision.Kind.String(),
				"query":           result.Query,
				"tool_result":     result.ToolResult,
				"response":        result.Response,
				"inference_calls": result.InferenceCalls,
				"states":          result.States,
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

func printToolData(cmd *cobra.Command, data any) error {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(body))
	return nil
}
