// Package catalog owns persistence for the four content kinds: exercises,
// training sessions, warm-ups, and match situations. It exposes typed CRUD
// on a SQLite-backed Store plus per-kind manager facades used by the
// interchange subsystem, which deals in wire payloads rather than typed
// models.
package catalog
