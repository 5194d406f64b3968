package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Audit entry levels.
const (
	AuditWarn  = "warn"
	AuditError = "error"
)

// AuditLog writes one plain-text artifact per problematic import so the
// exact payload and outcome can be reproduced later. Entries are
// append-only: each Record call creates a new file in the log directory.
type AuditLog struct {
	dir string
	now func() time.Time
}

// NewAuditLog constructs an audit log writing into dir.
func NewAuditLog(dir string) *AuditLog {
	return &AuditLog{dir: dir, now: time.Now}
}

// Record writes one entry describing the result and the raw payload that
// produced it, returning the entry's path.
func (a *AuditLog) Record(level string, result *ImportResult, payload []byte) (string, error) {
	if result == nil {
		return "", fmt.Errorf("audit record requires a result")
	}

	conflictsJSON, err := json.Marshal(result.Conflicts)
	if err != nil {
		return "", fmt.Errorf("serialize conflicts: %w", err)
	}
	insertedJSON, err := json.Marshal(result.InsertedIDs)
	if err != nil {
		return "", fmt.Errorf("serialize inserted ids: %w", err)
	}

	at := a.now().UTC()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "time=%s\n", at.Format(time.RFC3339))
	fmt.Fprintf(&buf, "level=%s\n", level)
	fmt.Fprintf(&buf, "success=%t\n", result.Success)
	fmt.Fprintf(&buf, "message=%s\n", result.Message)
	fmt.Fprintf(&buf, "conflicts=%s\n", conflictsJSON)
	fmt.Fprintf(&buf, "insertedIds=%s\n", insertedJSON)
	fmt.Fprintf(&buf, "payload=%s\n", bytes.TrimSpace(payload))

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create audit directory: %w", err)
	}

	filename := fmt.Sprintf("import_%s_%s.log.txt", level, at.Format(exportTimestampLayout))
	path := filepath.Join(a.dir, filename)
	if err := appendFile(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("write audit entry: %w", err)
	}
	return path, nil
}

// appendFile appends so two entries landing in the same second share a
// file instead of clobbering each other.
func appendFile(path string, content []byte) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
