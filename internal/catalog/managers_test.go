package catalog_test

import (
	"context"
	"testing"

	"ufm/internal/testsupport"
)

func TestExerciseManagerRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	manager := store.Exercises()

	ctx := context.Background()
	id, err := manager.CreateFromImport(ctx, map[string]any{
		"id":          "foreign-id",
		"nom":         "Pivot",
		"description": "Travail du pivot",
		"tags":        []any{"Revers"},
		"ignored":     "unknown fields are tolerated",
	})
	if err != nil {
		t.Fatalf("CreateFromImport failed: %v", err)
	}
	if id == "foreign-id" {
		t.Fatal("import must create a new record, not adopt the foreign id")
	}

	payload, err := manager.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if payload["nom"] != "Pivot" || payload["description"] != "Travail du pivot" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if _, ok := payload["workspace"]; ok {
		t.Fatal("workspace must not leak into the wire payload")
	}
}

func TestTrainingManagerDecodesNestedLists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	manager := store.Trainings()

	ctx := context.Background()
	id, err := manager.CreateFromImport(ctx, map[string]any{
		"titre": "Séance",
		"exercices": []any{
			map[string]any{"exercice_id": "ex-1", "duree_minutes": float64(20)},
		},
	})
	if err != nil {
		t.Fatalf("CreateFromImport failed: %v", err)
	}

	payload, err := manager.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	entries, ok := payload["exercices"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("unexpected exercices payload: %#v", payload["exercices"])
	}
	entry := entries[0].(map[string]any)
	if entry["exercice_id"] != "ex-1" || entry["duree_minutes"] != float64(20) {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestWarmupManagerCreateWithBlanks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	manager := store.Warmups()

	// The correction loop's "ignore" decision produces empty strings.
	id, err := manager.CreateFromImport(context.Background(), map[string]any{
		"nom":         "",
		"description": "",
	})
	if err != nil {
		t.Fatalf("CreateFromImport failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected id")
	}
}
