package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ufm/internal/catalog"
	"ufm/internal/config"
	"ufm/internal/interchange"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List catalog elements of one kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := interchange.ParseKind(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				headers, rows, err := listRows(cmd, store, kind)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No %s found in workspace %q\n", kind.Plural(), store.Workspace())
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
				return nil
			})
		},
	}
}

func listRows(cmd *cobra.Command, store *catalog.Store, kind interchange.Kind) ([]string, [][]string, error) {
	ctx := cmd.Context()
	switch kind {
	case interchange.KindExercise:
		exercises, err := store.ListExercises(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(exercises))
		for _, e := range exercises {
			rows = append(rows, []string{e.ID, e.Nom, strings.Join(e.Tags, ", "), formatTimestamp(e.UpdatedAt)})
		}
		return []string{"ID", "Nom", "Tags", "Updated"}, rows, nil
	case interchange.KindTraining:
		trainings, err := store.ListTrainings(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(trainings))
		for _, t := range trainings {
			rows = append(rows, []string{t.ID, t.Titre, t.Date, strconv.Itoa(len(t.Exercises)), formatTimestamp(t.UpdatedAt)})
		}
		return []string{"ID", "Titre", "Date", "Exercices", "Updated"}, rows, nil
	case interchange.KindWarmup:
		warmups, err := store.ListWarmups(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(warmups))
		for _, w := range warmups {
			rows = append(rows, []string{w.ID, w.Nom, strconv.Itoa(len(w.Blocs)), formatTimestamp(w.UpdatedAt)})
		}
		return []string{"ID", "Nom", "Blocs", "Updated"}, rows, nil
	case interchange.KindSituation:
		situations, err := store.ListSituations(ctx)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]string, 0, len(situations))
		for _, s := range situations {
			rows = append(rows, []string{s.ID, s.Nom, string(s.Type), strings.Join(s.Tags, ", "), formatTimestamp(s.UpdatedAt)})
		}
		return []string{"ID", "Nom", "Type", "Tags", "Updated"}, rows, nil
	default:
		return nil, nil, fmt.Errorf("unknown kind %q", kind)
	}
}

func formatTimestamp(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.Local().Format("2006-01-02 15:04")
}
