package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ufm/internal/tags"
)

const trainingColumns = "id, workspace, titre, date, exercices_json, echauffement_id, situation_id, tags_json, created_at, updated_at"

// CreateTraining inserts a new training session. Exercise, warm-up, and
// situation references are stored verbatim; nothing checks that they point
// at catalog rows.
func (s *Store) CreateTraining(ctx context.Context, training *Training) (*Training, error) {
	if training == nil {
		return nil, errors.New("training is nil")
	}

	now := timestampNow()
	created := *training
	created.ID = uuid.NewString()
	created.Workspace = s.workspace
	created.Tags = tags.CanonicalizeAll(created.Tags)

	exercisesJSON, err := marshalJSONColumn(created.Exercises)
	if err != nil {
		return nil, err
	}
	tagsJSON, err := marshalJSONColumn(created.Tags)
	if err != nil {
		return nil, err
	}

	err = s.execWithRetry(ctx,
		`INSERT INTO trainings (id, workspace, titre, date, exercices_json, echauffement_id, situation_id, tags_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.Workspace, created.Titre, created.Date,
		exercisesJSON, created.EchauffementID, created.SituationID, tagsJSON, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert training: %w", err)
	}

	return s.GetTraining(ctx, created.ID)
}

// GetTraining fetches one training session by id.
func (s *Store) GetTraining(ctx context.Context, id string) (*Training, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+trainingColumns+" FROM trainings WHERE id = ?", id)
	return scanTraining(row)
}

// ListTrainings returns the workspace's training sessions, most recently updated first.
func (s *Store) ListTrainings(ctx context.Context) ([]*Training, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT "+trainingColumns+" FROM trainings WHERE workspace = ? ORDER BY updated_at DESC", s.workspace)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	defer rows.Close()

	var out []*Training
	for rows.Next() {
		training, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, training)
	}
	return out, rows.Err()
}

func scanTraining(scanner interface{ Scan(dest ...any) error }) (*Training, error) {
	var (
		training      Training
		exercisesJSON string
		tagsJSON      string
		createdRaw    string
		updatedRaw    string
	)
	err := scanner.Scan(
		&training.ID, &training.Workspace, &training.Titre, &training.Date,
		&exercisesJSON, &training.EchauffementID, &training.SituationID,
		&tagsJSON, &createdRaw, &updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("training: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan training: %w", err)
	}
	if strings.TrimSpace(exercisesJSON) != "" {
		if err := json.Unmarshal([]byte(exercisesJSON), &training.Exercises); err != nil {
			return nil, fmt.Errorf("decode training exercises: %w", err)
		}
	}
	training.Tags = unmarshalStringList(tagsJSON)
	training.CreatedAt = parseTimestamp(createdRaw)
	training.UpdatedAt = parseTimestamp(updatedRaw)
	return &training, nil
}
