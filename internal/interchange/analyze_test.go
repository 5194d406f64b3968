package interchange_test

import (
	"reflect"
	"testing"

	"ufm/internal/interchange"
)

func TestAnalyzeReportsMissingRequiredFields(t *testing.T) {
	elements := []map[string]any{
		{"nom": "A", "description": "complete"},
		{"nom": "", "description": "   "},
		{"nom": "C", "description": "fine"},
	}

	items := interchange.Analyze(interchange.KindExercise, elements)
	if len(items) != 1 {
		t.Fatalf("expected one item, got %+v", items)
	}
	if items[0].Index != 1 {
		t.Fatalf("expected index 1, got %d", items[0].Index)
	}
	names := make([]string, 0, len(items[0].Fields))
	for _, field := range items[0].Fields {
		if !field.Required {
			t.Errorf("field %s should be marked required", field.Name)
		}
		names = append(names, field.Name)
	}
	if !reflect.DeepEqual(names, []string{"nom", "description"}) {
		t.Fatalf("unexpected field names: %v", names)
	}
}

func TestAnalyzeTreatsAbsentAndNullAsBlank(t *testing.T) {
	elements := []map[string]any{
		{"description": "present"},          // nom absent
		{"nom": nil, "description": "also"}, // nom null
	}
	items := interchange.Analyze(interchange.KindExercise, elements)
	if len(items) != 2 {
		t.Fatalf("expected two items, got %+v", items)
	}
	for i, item := range items {
		if item.Index != i {
			t.Errorf("item %d has index %d", i, item.Index)
		}
		if len(item.Fields) != 1 || item.Fields[0].Name != "nom" {
			t.Errorf("item %d fields = %+v", i, item.Fields)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	elements := []map[string]any{
		{"titre": ""},
		{"titre": "ok"},
		{},
	}
	first := interchange.Analyze(interchange.KindTraining, elements)
	second := interchange.Analyze(interchange.KindTraining, elements)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analysis differs between calls: %+v vs %+v", first, second)
	}
}

func TestAnalyzeSituationRequiresNomAndType(t *testing.T) {
	items := interchange.Analyze(interchange.KindSituation, []map[string]any{{"description": "d"}})
	if len(items) != 1 || len(items[0].Fields) != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestAnalyzeCleanBatchHasNoItems(t *testing.T) {
	items := interchange.Analyze(interchange.KindWarmup, []map[string]any{
		{"nom": "Gammes", "description": "5 minutes"},
	})
	if len(items) != 0 {
		t.Fatalf("unexpected items: %+v", items)
	}
}
