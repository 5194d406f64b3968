package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const warmupColumns = "id, workspace, nom, description, blocs_json, created_at, updated_at"

// CreateWarmup inserts a new warm-up routine.
func (s *Store) CreateWarmup(ctx context.Context, warmup *Warmup) (*Warmup, error) {
	if warmup == nil {
		return nil, errors.New("warmup is nil")
	}

	now := timestampNow()
	created := *warmup
	created.ID = uuid.NewString()
	created.Workspace = s.workspace

	blocksJSON, err := marshalJSONColumn(created.Blocs)
	if err != nil {
		return nil, err
	}

	err = s.execWithRetry(ctx,
		`INSERT INTO warmups (id, workspace, nom, description, blocs_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.Workspace, created.Nom, created.Description, blocksJSON, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert warmup: %w", err)
	}

	return s.GetWarmup(ctx, created.ID)
}

// GetWarmup fetches one warm-up routine by id.
func (s *Store) GetWarmup(ctx context.Context, id string) (*Warmup, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+warmupColumns+" FROM warmups WHERE id = ?", id)
	return scanWarmup(row)
}

// ListWarmups returns the workspace's warm-ups, most recently updated first.
func (s *Store) ListWarmups(ctx context.Context) ([]*Warmup, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		"SELECT "+warmupColumns+" FROM warmups WHERE workspace = ? ORDER BY updated_at DESC", s.workspace)
	if err != nil {
		return nil, fmt.Errorf("list warmups: %w", err)
	}
	defer rows.Close()

	var out []*Warmup
	for rows.Next() {
		warmup, err := scanWarmup(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, warmup)
	}
	return out, rows.Err()
}

func scanWarmup(scanner interface{ Scan(dest ...any) error }) (*Warmup, error) {
	var (
		warmup     Warmup
		blocksJSON string
		createdRaw string
		updatedRaw string
	)
	err := scanner.Scan(
		&warmup.ID, &warmup.Workspace, &warmup.Nom, &warmup.Description,
		&blocksJSON, &createdRaw, &updatedRaw,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("warmup: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan warmup: %w", err)
	}
	if strings.TrimSpace(blocksJSON) != "" {
		if err := json.Unmarshal([]byte(blocksJSON), &warmup.Blocs); err != nil {
			return nil, fmt.Errorf("decode warmup blocks: %w", err)
		}
	}
	warmup.CreatedAt = parseTimestamp(createdRaw)
	warmup.UpdatedAt = parseTimestamp(updatedRaw)
	return &warmup, nil
}
