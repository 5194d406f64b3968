package tags_test

import (
	"reflect"
	"testing"

	"ufm/internal/tags"
)

func TestCanonicalAppliesRenameTable(t *testing.T) {
	cases := map[string]string{
		"1c1":          "1 contre 1",
		"  physique  ": "Condition physique",
		"ECHAUFFEMENT": "Échauffement",
		"Revers":       "Revers",
		"":             "",
		"   ":          "",
	}
	for input, want := range cases {
		if got := tags.Canonical(input); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonicalizeAllDedupesAndPreservesOrder(t *testing.T) {
	got := tags.CanonicalizeAll([]string{"1c1", "Revers", "", "1 contre 1", "physique"})
	want := []string{"1 contre 1", "Revers", "Condition physique"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CanonicalizeAll = %v, want %v", got, want)
	}
}

func TestDisplayTitleCasesUnknownLabels(t *testing.T) {
	if got := tags.Display("revers"); got != "Revers" {
		t.Fatalf("Display(revers) = %q", got)
	}
	// Renamed labels keep the casing from the rename table.
	if got := tags.Display("1c1"); got != "1 contre 1" {
		t.Fatalf("Display(1c1) = %q", got)
	}
}
