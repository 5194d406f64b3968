package interchange_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ufm/internal/interchange"
)

// fakeManager is an in-memory domain manager recording every creation.
type fakeManager struct {
	kind     interchange.Kind
	created  []map[string]any
	entities map[string]map[string]any
	failAt   int // creation index that errors, -1 for never
}

func newFakeManager(kind interchange.Kind) *fakeManager {
	return &fakeManager{kind: kind, entities: map[string]map[string]any{}, failAt: -1}
}

func (m *fakeManager) CreateFromImport(_ context.Context, payload map[string]any) (string, error) {
	if m.failAt >= 0 && len(m.created) == m.failAt {
		return "", errors.New("storage rejected element")
	}
	id := fmt.Sprintf("%s-%d", m.kind, len(m.created)+1)
	m.created = append(m.created, payload)
	m.entities[id] = payload
	return id, nil
}

func (m *fakeManager) GetByID(_ context.Context, id string) (map[string]any, error) {
	entity, ok := m.entities[id]
	if !ok {
		return nil, fmt.Errorf("no entity %s", id)
	}
	return entity, nil
}

func testManagers() (interchange.Managers, map[interchange.Kind]*fakeManager) {
	fakes := map[interchange.Kind]*fakeManager{}
	managers := interchange.Managers{}
	for _, kind := range interchange.Kinds() {
		fake := newFakeManager(kind)
		fakes[kind] = fake
		managers[kind] = fake
	}
	return managers, fakes
}

func totalCreated(fakes map[interchange.Kind]*fakeManager) int {
	total := 0
	for _, fake := range fakes {
		total += len(fake.created)
	}
	return total
}

func TestDryRunNeverCallsManagers(t *testing.T) {
	managers, fakes := testManagers()
	importer := interchange.NewImporter(managers)

	payloads := []string{
		`{"version": "1.0", "type": "exercice", "data": {"nom": "A", "description": "d"}}`,
		`{"version": "1.0", "type": "exercice", "data": {"nom": "", "description": ""}}`,
		`{}`,
		`not even json`,
	}
	for _, payload := range payloads {
		importer.DryRun(context.Background(), []byte(payload))
	}

	if got := totalCreated(fakes); got != 0 {
		t.Fatalf("dry-run caused %d creations", got)
	}
}

func TestDryRunReportsConflictsWithoutError(t *testing.T) {
	managers, _ := testManagers()
	importer := interchange.NewImporter(managers)

	result := importer.DryRun(context.Background(), []byte(
		`{"version": "1.0", "type": "exercice", "data": {"nom": "", "description": "d"}}`))
	if result.Success {
		t.Fatal("expected failure for blank required field")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Field != "exercice[0].nom" {
		t.Fatalf("unexpected conflicts: %+v", result.Conflicts)
	}
	if len(result.InsertedIDs) != 0 {
		t.Fatalf("dry-run must not report inserted ids: %+v", result.InsertedIDs)
	}
}

func TestImportEmptyObjectYieldsRootConflict(t *testing.T) {
	managers, _ := testManagers()
	importer := interchange.NewImporter(managers)

	result := importer.DryRun(context.Background(), []byte(`{}`))
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Field != "root" {
		t.Fatalf("unexpected conflicts: %+v", result.Conflicts)
	}
}

func TestImportUnknownTypeYieldsMetaTypeConflict(t *testing.T) {
	managers, _ := testManagers()
	importer := interchange.NewImporter(managers)

	result := importer.Apply(context.Background(), []byte(
		`{"meta": {"type": "gadget", "schema_version": "1.0"}, "data": {"nom": "x"}}`))
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].Field != "meta.type" {
		t.Fatalf("unexpected conflicts: %+v", result.Conflicts)
	}
	if !strings.Contains(result.Conflicts[0].Message, "gadget") {
		t.Fatalf("message should name the offending type: %q", result.Conflicts[0].Message)
	}
}

func TestApplyCreatesInInputOrder(t *testing.T) {
	managers, fakes := testManagers()
	importer := interchange.NewImporter(managers)

	payload := `[
		{"version": "1.0", "type": "exercice", "data": {"nom": "A", "description": "a"}},
		{"version": "1.0", "type": "exercice", "data": {"nom": "B", "description": "b"}},
		{"version": "1.0", "type": "exercice", "data": {"nom": "C", "description": "c"}}
	]`
	result := importer.Apply(context.Background(), []byte(payload))
	if !result.Success {
		t.Fatalf("apply failed: %+v", result)
	}
	if len(result.InsertedIDs) != 3 {
		t.Fatalf("expected 3 inserted ids, got %+v", result.InsertedIDs)
	}
	for i, inserted := range result.InsertedIDs {
		if inserted.Type != interchange.KindExercise {
			t.Errorf("inserted %d has kind %s", i, inserted.Type)
		}
	}
	created := fakes[interchange.KindExercise].created
	if created[0]["nom"] != "A" || created[1]["nom"] != "B" || created[2]["nom"] != "C" {
		t.Fatalf("creation order not preserved: %#v", created)
	}
}

func TestApplyWithoutCorrectorBlocksOnMissingFields(t *testing.T) {
	managers, fakes := testManagers()
	importer := interchange.NewImporter(managers)

	result := importer.Apply(context.Background(), []byte(
		`{"version": "1.0", "type": "exercice", "data": {"nom": "", "description": "d"}}`))
	if result.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(result.Message, "import blocked") {
		t.Fatalf("expected a blocked outcome, got %q", result.Message)
	}
	if totalCreated(fakes) != 0 {
		t.Fatal("blocked apply must not create anything")
	}
	if len(result.Conflicts) == 0 {
		t.Fatal("expected the missing-field conflicts to be reported")
	}
}

func TestApplyIgnoreDecisionFillsBlanks(t *testing.T) {
	managers, fakes := testManagers()
	importer := interchange.NewImporter(managers,
		interchange.WithCorrector(interchange.IgnoreMissing()))

	result := importer.Apply(context.Background(), []byte(
		`{"version": "1.0", "type": "situation", "data": {"description": "libre"}}`))
	if !result.Success {
		t.Fatalf("apply failed: %+v", result)
	}
	created := fakes[interchange.KindSituation].created
	if len(created) != 1 {
		t.Fatalf("expected one creation, got %d", len(created))
	}
	if created[0]["nom"] != "" || created[0]["type"] != "" {
		t.Fatalf("blank defaults not applied: %#v", created[0])
	}
}

func TestApplyCorrectedValuesLandByIndex(t *testing.T) {
	managers, fakes := testManagers()
	corrections := map[string]string{
		"exercice[1].nom":         "Relance",
		"exercice[1].description": "Travail de relance sous pression",
	}
	importer := interchange.NewImporter(managers,
		interchange.WithCorrector(interchange.ValuesCorrector(corrections)))

	payload := `[
		{"version": "1.0", "type": "exercice", "data": {"nom": "A", "description": "a"}},
		{"version": "1.0", "type": "exercice", "data": {"nom": "", "description": ""}}
	]`
	result := importer.Apply(context.Background(), []byte(payload))
	if !result.Success {
		t.Fatalf("apply failed: %+v", result)
	}
	created := fakes[interchange.KindExercise].created
	if created[1]["nom"] != "Relance" {
		t.Fatalf("correction not applied: %#v", created[1])
	}
}

func TestApplyCancellationLeavesNoMutationAndNoErrorAudit(t *testing.T) {
	auditDir := t.TempDir()
	managers, fakes := testManagers()
	importer := interchange.NewImporter(managers,
		interchange.WithCorrector(interchange.CancelOnMissing()),
		interchange.WithAuditLog(interchange.NewAuditLog(auditDir)))

	result := importer.Apply(context.Background(), []byte(
		`{"version": "1.0", "type": "exercice", "data": {"nom": "", "description": ""}}`))
	if result.Success {
		t.Fatal("cancelled import must not succeed")
	}
	if len(result.InsertedIDs) != 0 {
		t.Fatalf("cancelled import inserted ids: %+v", result.InsertedIDs)
	}
	if totalCreated(fakes) != 0 {
		t.Fatal("cancelled import must not create anything")
	}

	entries, err := os.ReadDir(auditDir)
	if err != nil {
		t.Fatalf("read audit dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), "error") {
			t.Fatalf("cancellation produced an error audit entry: %s", entry.Name())
		}
	}
}

func TestApplyCreationFailureKeepsPartialIDs(t *testing.T) {
	auditDir := t.TempDir()
	managers, fakes := testManagers()
	fakes[interchange.KindExercise].failAt = 2
	importer := interchange.NewImporter(managers,
		interchange.WithAuditLog(interchange.NewAuditLog(auditDir)))

	payload := `[
		{"version": "1.0", "type": "exercice", "data": {"nom": "A", "description": "a"}},
		{"version": "1.0", "type": "exercice", "data": {"nom": "B", "description": "b"}},
		{"version": "1.0", "type": "exercice", "data": {"nom": "C", "description": "c"}}
	]`
	result := importer.Apply(context.Background(), []byte(payload))
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.InsertedIDs) != 2 {
		t.Fatalf("expected the two pre-failure ids, got %+v", result.InsertedIDs)
	}
	found := false
	for _, conflict := range result.Conflicts {
		if conflict.Field == "exception" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an exception conflict: %+v", result.Conflicts)
	}

	entries, err := filepath.Glob(filepath.Join(auditDir, "import_error_*.log.txt"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected an error audit entry, got %v (%v)", entries, err)
	}
}

func TestPreviewElementAnalyzesSingleElement(t *testing.T) {
	managers, _ := testManagers()
	importer := interchange.NewImporter(managers)

	items := importer.PreviewElement(interchange.KindExercise, map[string]any{"nom": "ok"})
	if len(items) != 1 || items[0].Index != 0 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(items[0].Fields) != 1 || items[0].Fields[0].Name != "description" {
		t.Fatalf("unexpected fields: %+v", items[0].Fields)
	}

	if items := importer.PreviewElement(interchange.KindExercise, map[string]any{"nom": "ok", "description": "d"}); len(items) != 0 {
		t.Fatalf("clean element should produce no items: %+v", items)
	}
}
