package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ufm/internal/catalog"
	"ufm/internal/config"
	"ufm/internal/interchange"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "export <kind> <id>",
		Short: "Export one element to a portable envelope file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := interchange.ParseKind(args[0])
			if err != nil {
				return err
			}
			id := args[1]

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				dir := outputDir
				if dir == "" {
					dir = cfg.Paths.ExportDir
				}
				exporter := interchange.NewExporter(managersFor(store), dir)
				path, err := exporter.ExportOne(cmd.Context(), kind, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s %s to %s\n", kind, id, path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for the envelope file (defaults to the configured export dir)")
	return cmd
}
