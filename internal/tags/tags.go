// Package tags normalizes free-text tag labels. Content imported from older
// releases of the tool carries labels that were since renamed; the rename
// table below maps those legacy labels onto their canonical form. This is a
// pure lookup and is deliberately separate from entity-kind normalization.
package tags

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// legacyLabels maps retired tag labels to their canonical replacement.
// Keys are compared case-insensitively after trimming.
var legacyLabels = map[string]string{
	"echauffement":   "Échauffement",
	"préparation":    "Échauffement",
	"1c1":            "1 contre 1",
	"2c2":            "2 contre 2",
	"3c3":            "3 contre 3",
	"physique":       "Condition physique",
	"condition":      "Condition physique",
	"lancé":          "Lancer",
	"lancer long":    "Lancer profond",
	"longue passe":   "Lancer profond",
	"défense de zone": "Zone",
	"debutant":       "Débutant",
	"confirmés":      "Confirmé",
}

var titleCaser = cases.Title(language.French, cases.NoLower)

// Canonical returns the canonical form of a tag label, applying the legacy
// rename table when the label matches a retired entry. Unknown labels are
// returned trimmed but otherwise untouched.
func Canonical(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := legacyLabels[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// CanonicalizeAll maps Canonical over a label list, dropping blanks and
// duplicates while preserving first-seen order.
func CanonicalizeAll(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		canonical := Canonical(label)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

// Display renders a label for listings: canonicalized, then title-cased
// using French casing rules for labels the rename table does not cover.
func Display(label string) string {
	canonical := Canonical(label)
	if canonical == "" {
		return ""
	}
	if _, ok := legacyLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return canonical
	}
	return titleCaser.String(canonical)
}
