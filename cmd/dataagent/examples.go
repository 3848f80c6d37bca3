package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultExample = "What are the top 5 products by revenue?"

var examples = []string{
	"What products do we have in the database?",
	defaultExample,
	"Which region has the highest total sales?",
	"Show me sales data for the Electronics category",
}

func newExamplesCmd(opts *options) *cobra.Command {
	var run bool

	cmd := &cobra.Command{
		Use:   "examples",
		Short: "List, or run, the example questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !run {
				for i, q := range examples {
					fmt.Fprintf(out, "%d. %s\n", i+1, q)
				}
				return nil
			}

			k, err := opts.kernel()
			if err != nil {
				return err
			}
			defer k.Close()

			for _, q := range examples {
				answer(cmd.Context(), out, k, q)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&run, "run", false, "Answer every example question in one conversation")
	return cmd
}
