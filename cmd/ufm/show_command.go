package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"ufm/internal/catalog"
	"ufm/internal/config"
	"ufm/internal/interchange"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show one catalog element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := interchange.ParseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				manager, ok := managersFor(store)[kind]
				if !ok {
					return fmt.Errorf("unknown kind %q", kind)
				}
				payload, err := manager.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, payload)
				}

				keys := make([]string, 0, len(payload))
				for key := range payload {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				out := cmd.OutOrStdout()
				for _, key := range keys {
					fmt.Fprintf(out, "%-16s %v\n", key+":", payload[key])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the element as JSON")
	return cmd
}
