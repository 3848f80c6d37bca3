package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/dataagent/memory"
)

func newNotesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage context notes added to the system prompt",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List note keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.store()
				if err != nil {
					return err
				}
				keys, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the notes as the model sees them",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.store()
				if err != nil {
					return err
				}
				text, err := memory.Compose(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <key> <text>",
			Short: "Create or overwrite a note, e.g. glossary/revenue.md",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.store()
				if err != nil {
					return err
				}
				return store.Save(cmd.Context(), memory.NewEntry(args[0], strings.Join(args[1:], " ")))
			},
		},
		&cobra.Command{
			Use:   "rm <key>...",
			Short: "Delete notes",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := opts.store()
				if err != nil {
					return err
				}
				return store.Delete(cmd.Context(), args...)
			},
		},
	)
	return cmd
}

func (o *options) store() (memory.Store, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	store, err := memory.NewStore(&cfg.Memory)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("no notes directory configured; set memory.path or --notes")
	}
	return store, nil
}
