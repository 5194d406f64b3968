package catalog_test

import (
	"context"
	"errors"
	"testing"

	"ufm/internal/catalog"
	"ufm/internal/testsupport"
)

func TestCreateAndGetExercise(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	created, err := store.CreateExercise(ctx, &catalog.Exercise{
		Nom:         "Passes courtes",
		Description: "Deux lignes face à face.",
		Tags:        []string{"1c1", "Revers", "1 contre 1"},
	})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected id to be assigned")
	}
	if created.Workspace != cfg.Library.Workspace {
		t.Fatalf("unexpected workspace: %q", created.Workspace)
	}
	// Legacy tags are canonicalized and deduplicated on the way in.
	if len(created.Tags) != 2 || created.Tags[0] != "1 contre 1" || created.Tags[1] != "Revers" {
		t.Fatalf("unexpected tags: %v", created.Tags)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	fetched, err := store.GetExercise(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if fetched.Nom != "Passes courtes" {
		t.Fatalf("unexpected exercise: %#v", fetched)
	}
}

func TestCreateExerciseIgnoresSuppliedID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	created, err := store.CreateExercise(context.Background(), &catalog.Exercise{
		ID:          "imported-id",
		Nom:         "A",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if created.ID == "imported-id" {
		t.Fatal("imported id must not be reused")
	}
}

func TestGetExerciseNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.GetExercise(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateTrainingPreservesReferences(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	created, err := store.CreateTraining(ctx, &catalog.Training{
		Titre: "Séance du mardi",
		Date:  "2026-04-07",
		Exercises: []catalog.TrainingExercise{
			{ExerciseID: "ex-a", DureeMinutes: 15, Notes: "échauffement inclus"},
			{ExerciseID: "ex-b", DureeMinutes: 25},
		},
		EchauffementID: "warm-1",
		SituationID:    "sit-1",
	})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}

	fetched, err := store.GetTraining(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetTraining failed: %v", err)
	}
	if len(fetched.Exercises) != 2 || fetched.Exercises[0].ExerciseID != "ex-a" || fetched.Exercises[1].DureeMinutes != 25 {
		t.Fatalf("references lost: %#v", fetched.Exercises)
	}
	// References pass through unresolved even when they point nowhere.
	if fetched.EchauffementID != "warm-1" || fetched.SituationID != "sit-1" {
		t.Fatalf("unexpected references: %#v", fetched)
	}
}

func TestCreateWarmupWithBlocks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	created, err := store.CreateWarmup(ctx, &catalog.Warmup{
		Nom:         "Routine complète",
		Description: "Avant match",
		Blocs: []catalog.WarmupBlock{
			{Titre: "Course", TempsSecondes: 300},
			{Titre: "Étirements", Repetitions: 10, Notes: "par binôme"},
		},
	})
	if err != nil {
		t.Fatalf("CreateWarmup failed: %v", err)
	}

	fetched, err := store.GetWarmup(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetWarmup failed: %v", err)
	}
	if len(fetched.Blocs) != 2 || fetched.Blocs[1].Repetitions != 10 {
		t.Fatalf("blocks lost: %#v", fetched.Blocs)
	}
}

func TestCreateSituationAcceptsBlankFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	// Imports resolved with "proceed with blanks" must be storable.
	created, err := store.CreateSituation(context.Background(), &catalog.Situation{})
	if err != nil {
		t.Fatalf("CreateSituation failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected id to be assigned")
	}
}

func TestListFiltersByWorkspace(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithWorkspace("seniors"))
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.CreateExercise(ctx, &catalog.Exercise{Nom: "A", Description: "d"}); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	other := *cfg
	other.Library.Workspace = "juniors"
	otherStore := testsupport.MustOpenStore(t, &other)

	listed, err := otherStore.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("workspace filter leaked: %#v", listed)
	}

	listed, err = store.ListExercises(ctx)
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one exercise, got %d", len(listed))
	}
}
