// Package interchange implements the portable content format: exporting a
// catalog entity to a versioned {meta, data} envelope, and importing one or
// many envelopes back through a dry-run, analyze, correct, apply cycle.
//
// The package owns no durable state. Persistence is delegated to per-kind
// Manager collaborators; everything built here (normalized batches, field
// reports, pending corrections) lives for one import call and is discarded
// when it returns.
package interchange
