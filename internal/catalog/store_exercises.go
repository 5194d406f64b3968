package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ufm/internal/tags"
)

const exerciseColumns = "id, workspace, nom, description, variables_text, schema_url, video_url, tags_json, created_at, updated_at"

// CreateExercise inserts a new exercise and returns it with id and
// timestamps assigned. The input id, if any, is ignored.
func (s *Store) CreateExercise(ctx context.Context, exercise *Exercise) (*Exercise, error) {
	if exercise == nil {
		return nil, errors.New("exercise is nil")
	}

	now := timestampNow()
	created := *exercise
	created.ID = uuid.NewString()
	created.Workspace = s.workspace
	created.Tags = tags.CanonicalizeAll(created.Tags)

	tagsJSON, err := marshalJSONColumn(created.Tags)
	if err != nil {
		return nil, err
	}

	err = s.execWithRetry(ctx,
		`INSERT INTO exercises (id, workspace, nom, description, variables_text, schema_url, video_url, tags_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.Workspace, created.Nom, created.Description,
		created.VariablesText, created.SchemaURL, created.VideoURL, tagsJSON, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return s.GetExercise(ctx, created.ID)
}

// GetExercise fetches one exercise by id.
func (s *Store) GetExercise(ctx context.Context, id string) (*Exercise, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+exerciseColumns+" FROM exercises WHERE id = ?", id)
	return scanExercise(row)
}

// ListExercises returns the workspace's exercises, most recently updated first.
func (s *Store) ListExercises(ctx context.Context) ([]*Exercise, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT "+exerciseColumns+" FROM exercises WHERE workspace = ? ORDER BY updated_at DESC", s.workspace)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var out []*Exercise
	for rows.Next() {
		exercise, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, exercise)
	}
	return out, rows.Err()
}

func scanExercise(scanner interface{ Scan(dest ...any) error }) (*Exercise, error) {
	var (
		exercise   Exercise
		tagsJSON   string
		createdRaw string
		updatedRaw string
	)
	err := scanner.Scan(
		&exercise.ID, &exercise.Workspace, &exercise.Nom, &exercise.Description,
		&exercise.VariablesText, &exercise.SchemaURL, &exercise.VideoURL,
		&tagsJSON, &createdRaw, &updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("exercise: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	exercise.Tags = unmarshalStringList(tagsJSON)
	exercise.CreatedAt = parseTimestamp(createdRaw)
	exercise.UpdatedAt = parseTimestamp(updatedRaw)
	return &exercise, nil
}
