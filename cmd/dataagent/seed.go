package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/dataagent/dataset"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [path]",
		Short: "Create the demo sales database (default sales.db)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "sales.db"
			if len(args) == 1 {
				path = args[0]
			}

			n, err := dataset.SeedSales(cmd.Context(), path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answerStyle.Render(fmt.Sprintf("Seeded %d sales rows into %s", n, path)))
			return nil
		},
	}
}
