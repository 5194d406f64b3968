package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// The manager facades adapt the typed store to the wire-payload contract of
// the interchange subsystem: CreateFromImport always creates a new row
// (imported ids are discarded), and GetByID returns the entity's portable
// field representation.

// ExerciseManager is the import/export collaborator for exercises.
type ExerciseManager struct{ store *Store }

// TrainingManager is the import/export collaborator for training sessions.
type TrainingManager struct{ store *Store }

// WarmupManager is the import/export collaborator for warm-ups.
type WarmupManager struct{ store *Store }

// SituationManager is the import/export collaborator for situations.
type SituationManager struct{ store *Store }

func (s *Store) Exercises() ExerciseManager   { return ExerciseManager{store: s} }
func (s *Store) Trainings() TrainingManager   { return TrainingManager{store: s} }
func (s *Store) Warmups() WarmupManager       { return WarmupManager{store: s} }
func (s *Store) Situations() SituationManager { return SituationManager{store: s} }

func (m ExerciseManager) CreateFromImport(ctx context.Context, payload map[string]any) (string, error) {
	var exercise Exercise
	if err := decodePayload(payload, &exercise); err != nil {
		return "", fmt.Errorf("decode exercise payload: %w", err)
	}
	created, err := m.store.CreateExercise(ctx, &exercise)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (m ExerciseManager) GetByID(ctx context.Context, id string) (map[string]any, error) {
	exercise, err := m.store.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	return encodePayload(exercise)
}

func (m TrainingManager) CreateFromImport(ctx context.Context, payload map[string]any) (string, error) {
	var training Training
	if err := decodePayload(payload, &training); err != nil {
		return "", fmt.Errorf("decode training payload: %w", err)
	}
	created, err := m.store.CreateTraining(ctx, &training)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (m TrainingManager) GetByID(ctx context.Context, id string) (map[string]any, error) {
	training, err := m.store.GetTraining(ctx, id)
	if err != nil {
		return nil, err
	}
	return encodePayload(training)
}

func (m WarmupManager) CreateFromImport(ctx context.Context, payload map[string]any) (string, error) {
	var warmup Warmup
	if err := decodePayload(payload, &warmup); err != nil {
		return "", fmt.Errorf("decode warmup payload: %w", err)
	}
	created, err := m.store.CreateWarmup(ctx, &warmup)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (m WarmupManager) GetByID(ctx context.Context, id string) (map[string]any, error) {
	warmup, err := m.store.GetWarmup(ctx, id)
	if err != nil {
		return nil, err
	}
	return encodePayload(warmup)
}

func (m SituationManager) CreateFromImport(ctx context.Context, payload map[string]any) (string, error) {
	var situation Situation
	if err := decodePayload(payload, &situation); err != nil {
		return "", fmt.Errorf("decode situation payload: %w", err)
	}
	created, err := m.store.CreateSituation(ctx, &situation)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (m SituationManager) GetByID(ctx context.Context, id string) (map[string]any, error) {
	situation, err := m.store.GetSituation(ctx, id)
	if err != nil {
		return nil, err
	}
	return encodePayload(situation)
}

// decodePayload converts a wire payload into a typed model through its JSON
// tags. Unknown fields are tolerated; numbers decode through float64 as
// usual for generic JSON.
func decodePayload(payload map[string]any, target any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	return decoder.Decode(target)
}

// encodePayload converts a typed model into its portable field map. Fields
// tagged json:"-" (workspace, timestamps) stay out of the wire form.
func encodePayload(entity any) (map[string]any, error) {
	encoded, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
