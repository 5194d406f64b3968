package interchange

import (
	"fmt"
	"strings"
)

// Kind identifies one importable/exportable content category.
type Kind string

const (
	KindExercise  Kind = "exercice"
	KindTraining  Kind = "entrainement"
	KindWarmup    Kind = "echauffement"
	KindSituation Kind = "situation"
)

// Kinds returns all registered kinds in canonical processing order. Batch
// imports iterate this order so results stay deterministic.
func Kinds() []Kind {
	return []Kind{KindExercise, KindTraining, KindWarmup, KindSituation}
}

// kindAliases maps accepted spellings onto the canonical kind. Both the
// French wire names and common English variants resolve; "match" folds into
// the situation family.
var kindAliases = map[string]Kind{
	"exercice":      KindExercise,
	"exercices":     KindExercise,
	"exercise":      KindExercise,
	"exercises":     KindExercise,
	"entrainement":  KindTraining,
	"entrainements": KindTraining,
	"training":      KindTraining,
	"trainings":     KindTraining,
	"echauffement":  KindWarmup,
	"echauffements": KindWarmup,
	"warmup":        KindWarmup,
	"warmups":       KindWarmup,
	"warm-up":       KindWarmup,
	"situation":     KindSituation,
	"situations":    KindSituation,
	"match":         KindSituation,
	"matchs":        KindSituation,
}

// ParseKind normalizes a declared content type. It trims and lower-cases
// the input, resolves known aliases, and fails with ErrUnknownType for
// anything outside the registry.
func ParseKind(raw string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := kindAliases[normalized]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
}

// Plural returns the group key used for this kind in bulk payloads.
func (k Kind) Plural() string {
	switch k {
	case KindExercise:
		return "exercices"
	case KindTraining:
		return "entrainements"
	case KindWarmup:
		return "echauffements"
	case KindSituation:
		return "situations"
	default:
		return string(k)
	}
}

func (k Kind) String() string {
	return string(k)
}
