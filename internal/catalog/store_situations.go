package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ufm/internal/tags"
)

const situationColumns = "id, workspace, nom, type, description, temps, tags_json, created_at, updated_at"

// CreateSituation inserts a new match or game situation.
func (s *Store) CreateSituation(ctx context.Context, situation *Situation) (*Situation, error) {
	if situation == nil {
		return nil, errors.New("situation is nil")
	}

	now := timestampNow()
	created := *situation
	created.ID = uuid.NewString()
	created.Workspace = s.workspace
	created.Tags = tags.CanonicalizeAll(created.Tags)

	tagsJSON, err := marshalJSONColumn(created.Tags)
	if err != nil {
		return nil, err
	}

	err = s.execWithRetry(ctx,
		`INSERT INTO situations (id, workspace, nom, type, description, temps, tags_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.Workspace, created.Nom, string(created.Type),
		created.Description, created.Temps, tagsJSON, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert situation: %w", err)
	}

	return s.GetSituation(ctx, created.ID)
}

// GetSituation fetches one situation by id.
func (s *Store) GetSituation(ctx context.Context, id string) (*Situation, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+situationColumns+" FROM situations WHERE id = ?", id)
	return scanSituation(row)
}

// ListSituations returns the workspace's situations, most recently updated first.
func (s *Store) ListSituations(ctx context.Context) ([]*Situation, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT "+situationColumns+" FROM situations WHERE workspace = ? ORDER BY updated_at DESC", s.workspace)
	if err != nil {
		return nil, fmt.Errorf("list situations: %w", err)
	}
	defer rows.Close()

	var out []*Situation
	for rows.Next() {
		situation, err := scanSituation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, situation)
	}
	return out, rows.Err()
}

func scanSituation(scanner interface{ Scan(dest ...any) error }) (*Situation, error) {
	var (
		situation  Situation
		typeRaw    string
		tagsJSON   string
		createdRaw string
		updatedRaw string
	)
	err := scanner.Scan(
		&situation.ID, &situation.Workspace, &situation.Nom, &typeRaw,
		&situation.Description, &situation.Temps, &tagsJSON, &createdRaw, &updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("situation: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan situation: %w", err)
	}
	situation.Type = SituationType(typeRaw)
	situation.Tags = unmarshalStringList(tagsJSON)
	situation.CreatedAt = parseTimestamp(createdRaw)
	situation.UpdatedAt = parseTimestamp(updatedRaw)
	return &situation, nil
}
