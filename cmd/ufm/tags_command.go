package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ufm/internal/tags"
)

func newTagsCommand() *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag vocabulary utilities",
	}

	tagsCmd.AddCommand(newTagsNormalizeCommand())

	return tagsCmd
}

func newTagsNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "normalize <tag> [tag...]",
		Short:       "Map legacy tag labels onto the canonical vocabulary",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			canonical := tags.CanonicalizeAll(args)
			display := make([]string, 0, len(canonical))
			for _, tag := range canonical {
				display = append(display, tags.Display(tag))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(display, ", "))
			return nil
		},
	}
}
