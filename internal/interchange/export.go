package interchange

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const exportTimestampLayout = "2006-01-02T15-04-05"

// Exporter writes single entities to portable envelope files.
type Exporter struct {
	managers Managers
	dir      string
	now      func() time.Time
}

// ExporterOption customizes exporter construction.
type ExporterOption func(*Exporter)

// WithClock overrides the export timestamp source. Intended for tests.
func WithClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) { e.now = now }
}

// NewExporter constructs an exporter writing into dir.
func NewExporter(managers Managers, dir string, opts ...ExporterOption) *Exporter {
	e := &Exporter{managers: managers, dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportOne fetches the entity through its domain manager, seals it into
// an envelope, and writes {kind}_{id}_{timestamp}.ufm.json into the export
// directory. It returns the written file's path.
func (e *Exporter) ExportOne(ctx context.Context, kind Kind, id string) (string, error) {
	manager, ok := e.managers[kind]
	if !ok {
		return "", fmt.Errorf("no domain manager registered for kind %q", kind)
	}

	payload, err := manager.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("fetch %s %s: %w", kind, id, err)
	}

	at := e.now()
	encoded, err := EncodeEnvelope(kind, id, payload, at)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s.ufm.json", kind, id, at.UTC().Format(exportTimestampLayout))
	path := filepath.Join(e.dir, filename)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
