package interchange

import "context"

// Conflict is a non-fatal observation about a field's value or absence.
type Conflict struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MissingField describes one required field found blank on an element.
// Value carries the caller's correction once one has been supplied.
type MissingField struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Required bool   `json:"required"`
}

// MissingFieldItem groups the missing fields of one batch element. Index
// points into the batch array of the item's kind; elements are never
// reordered mid-flow, so a correction supplied against an earlier analysis
// still lands on the right element.
type MissingFieldItem struct {
	Index  int            `json:"index"`
	Fields []MissingField `json:"fields"`
}

// AnalysisReport is the analyzer output for one kind of a batch.
type AnalysisReport struct {
	Kind  Kind               `json:"kind"`
	Items []MissingFieldItem `json:"items"`
}

// InsertedID records one successful creation during apply.
type InsertedID struct {
	Type Kind   `json:"type"`
	ID   string `json:"id"`
}

// ImportResult is the outcome of one dry-run or apply call. InsertedIDs is
// non-empty only when Success is true, with one exception: a creation
// failure mid-batch keeps the ids created before the failure so the caller
// can see what was committed.
type ImportResult struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Conflicts   []Conflict   `json:"conflicts"`
	InsertedIDs []InsertedID `json:"insertedIds"`
}

// Batch is the canonical grouped-by-kind form every accepted input shape
// normalizes into.
type Batch map[Kind][]map[string]any

// Len counts the elements across all kinds.
func (b Batch) Len() int {
	total := 0
	for _, elements := range b {
		total += len(elements)
	}
	return total
}

// Manager is the persistence collaborator for one content kind. The
// interchange core never touches storage directly; creation and lookup go
// through these two operations.
type Manager interface {
	CreateFromImport(ctx context.Context, payload map[string]any) (string, error)
	GetByID(ctx context.Context, id string) (map[string]any, error)
}

// Managers binds each kind to its persistence collaborator.
type Managers map[Kind]Manager
