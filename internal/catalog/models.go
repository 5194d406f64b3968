package catalog

import "time"

// SituationType distinguishes full matches from constrained game situations.
type SituationType string

const (
	SituationTypeMatch     SituationType = "Match"
	SituationTypeSituation SituationType = "Situation"
)

// Exercise is a single drill with optional media references.
type Exercise struct {
	ID            string   `json:"id,omitempty"`
	Nom           string   `json:"nom"`
	Description   string   `json:"description"`
	VariablesText string   `json:"variables_text,omitempty"`
	SchemaURL     string   `json:"schema_url,omitempty"`
	VideoURL      string   `json:"video_url,omitempty"`
	Tags          []string `json:"tags,omitempty"`

	Workspace string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TrainingExercise is one ordered entry of a training session. ExerciseID is
// passed through verbatim on import; the interchange subsystem never
// resolves it against the catalog.
type TrainingExercise struct {
	ExerciseID   string `json:"exercice_id"`
	DureeMinutes int    `json:"duree_minutes,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Training is a planned session referencing exercises by id.
type Training struct {
	ID             string             `json:"id,omitempty"`
	Titre          string             `json:"titre"`
	Date           string             `json:"date,omitempty"`
	Exercises      []TrainingExercise `json:"exercices,omitempty"`
	EchauffementID string             `json:"echauffement_id,omitempty"`
	SituationID    string             `json:"situation_id,omitempty"`
	Tags           []string           `json:"tags,omitempty"`

	Workspace string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// WarmupBlock is one timed block of a warm-up routine.
type WarmupBlock struct {
	Titre         string `json:"titre"`
	Repetitions   int    `json:"repetitions,omitempty"`
	TempsSecondes int    `json:"temps_secondes,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Warmup is an ordered list of blocks run before a session.
type Warmup struct {
	ID          string        `json:"id,omitempty"`
	Nom         string        `json:"nom"`
	Description string        `json:"description"`
	Blocs       []WarmupBlock `json:"blocs,omitempty"`

	Workspace string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Situation is a match or game-situation setup.
type Situation struct {
	ID          string        `json:"id,omitempty"`
	Nom         string        `json:"nom"`
	Type        SituationType `json:"type"`
	Description string        `json:"description,omitempty"`
	Temps       string        `json:"temps,omitempty"`
	Tags        []string      `json:"tags,omitempty"`

	Workspace string    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
