package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ufm/internal/catalog"
	"ufm/internal/config"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create catalog elements",
	}

	addCmd.AddCommand(newAddExerciseCommand(ctx))
	addCmd.AddCommand(newAddTrainingCommand(ctx))
	addCmd.AddCommand(newAddWarmupCommand(ctx))
	addCmd.AddCommand(newAddSituationCommand(ctx))

	return addCmd
}

func newAddExerciseCommand(ctx *commandContext) *cobra.Command {
	var exercise catalog.Exercise

	cmd := &cobra.Command{
		Use:   "exercice",
		Short: "Create an exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				created, err := store.CreateExercise(cmd.Context(), &exercise)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created exercice %s\n", created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&exercise.Nom, "nom", "", "Exercise name")
	cmd.Flags().StringVar(&exercise.Description, "description", "", "Exercise description")
	cmd.Flags().StringVar(&exercise.VariablesText, "variables", "", "Free-form variables text")
	cmd.Flags().StringVar(&exercise.SchemaURL, "schema-url", "", "Diagram URL")
	cmd.Flags().StringVar(&exercise.VideoURL, "video-url", "", "Video URL")
	cmd.Flags().StringSliceVar(&exercise.Tags, "tags", nil, "Tags (comma separated)")
	_ = cmd.MarkFlagRequired("nom")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newAddTrainingCommand(ctx *commandContext) *cobra.Command {
	var (
		training    catalog.Training
		exerciseIDs []string
	)

	cmd := &cobra.Command{
		Use:   "entrainement",
		Short: "Create a training session",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range exerciseIDs {
				training.Exercises = append(training.Exercises, catalog.TrainingExercise{ExerciseID: id})
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				created, err := store.CreateTraining(cmd.Context(), &training)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created entrainement %s\n", created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&training.Titre, "titre", "", "Session title")
	cmd.Flags().StringVar(&training.Date, "date", "", "Session date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&exerciseIDs, "exercice", nil, "Exercise id to include (repeatable)")
	cmd.Flags().StringVar(&training.EchauffementID, "echauffement", "", "Warm-up id")
	cmd.Flags().StringVar(&training.SituationID, "situation", "", "Situation id")
	cmd.Flags().StringSliceVar(&training.Tags, "tags", nil, "Tags (comma separated)")
	_ = cmd.MarkFlagRequired("titre")
	return cmd
}

func newAddWarmupCommand(ctx *commandContext) *cobra.Command {
	var warmup catalog.Warmup

	cmd := &cobra.Command{
		Use:   "echauffement",
		Short: "Create a warm-up",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				created, err := store.CreateWarmup(cmd.Context(), &warmup)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created echauffement %s\n", created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&warmup.Nom, "nom", "", "Warm-up name")
	cmd.Flags().StringVar(&warmup.Description, "description", "", "Warm-up description")
	_ = cmd.MarkFlagRequired("nom")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newAddSituationCommand(ctx *commandContext) *cobra.Command {
	var (
		situation     catalog.Situation
		situationType string
	)

	cmd := &cobra.Command{
		Use:   "situation",
		Short: "Create a match situation",
		RunE: func(cmd *cobra.Command, args []string) error {
			situation.Type = catalog.SituationType(situationType)
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				created, err := store.CreateSituation(cmd.Context(), &situation)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created situation %s\n", created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&situation.Nom, "nom", "", "Situation name")
	cmd.Flags().StringVar(&situationType, "type", string(catalog.SituationTypeMatch), "Situation type (match or situation)")
	cmd.Flags().StringVar(&situation.Description, "description", "", "Situation description")
	cmd.Flags().StringVar(&situation.Temps, "temps", "", "Planned duration")
	cmd.Flags().StringSliceVar(&situation.Tags, "tags", nil, "Tags (comma separated)")
	_ = cmd.MarkFlagRequired("nom")
	return cmd
}
