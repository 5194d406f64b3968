package interchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"ufm/internal/logging"
)

// Importer drives the dry-run/analyze/correct/apply cycle for one batch at
// a time. It holds no state across calls; every invocation owns its
// normalized batch and reports exclusively.
type Importer struct {
	managers  Managers
	corrector Corrector
	audit     *AuditLog
	logger    *slog.Logger
	supported string
}

// ImporterOption customizes importer construction.
type ImporterOption func(*Importer)

// WithCorrector installs the decision-maker for missing-field reports.
// Without one, an apply that needs corrections fails instead of blocking.
func WithCorrector(corrector Corrector) ImporterOption {
	return func(im *Importer) { im.corrector = corrector }
}

// WithAuditLog installs the audit sink for problematic imports.
func WithAuditLog(audit *AuditLog) ImporterOption {
	return func(im *Importer) { im.audit = audit }
}

// WithLogger installs the structured logger.
func WithLogger(logger *slog.Logger) ImporterOption {
	return func(im *Importer) { im.logger = logger }
}

// WithSupportedVersion overrides the schema version gate. Intended for
// tests exercising version skew.
func WithSupportedVersion(version string) ImporterOption {
	return func(im *Importer) { im.supported = version }
}

// NewImporter constructs an importer over the given domain managers.
func NewImporter(managers Managers, opts ...ImporterOption) *Importer {
	im := &Importer{
		managers:  managers,
		logger:    logging.NewNop(),
		supported: SchemaVersion,
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.logger == nil {
		im.logger = logging.NewNop()
	}
	return im
}

// PreviewElement runs the field analyzer over a single element, giving
// interactive callers a live view of what a correction changed. Nothing is
// persisted.
func (im *Importer) PreviewElement(kind Kind, element map[string]any) []MissingFieldItem {
	return Analyze(kind, []map[string]any{element})
}

// DryRun normalizes and analyzes the raw payload without touching any
// domain manager. It never returns an error: pathological input comes back
// as a failed result with conflicts describing the cause.
func (im *Importer) DryRun(ctx context.Context, raw []byte) *ImportResult {
	batch, conflicts := im.normalizeInput(raw)
	if len(conflicts) > 0 {
		return im.finish(&ImportResult{
			Success:   false,
			Message:   "import aborted: " + conflicts[0].Message,
			Conflicts: conflicts,
		}, raw)
	}

	reports := analyzeBatch(batch)
	if len(reports) > 0 {
		found := reportConflicts(reports)
		return im.finish(&ImportResult{
			Success:   false,
			Message:   fmt.Sprintf("dry-run: found %d conflict(s)", len(found)),
			Conflicts: found,
		}, raw)
	}

	return &ImportResult{
		Success: true,
		Message: fmt.Sprintf("dry-run: %d element(s) ready to import", batch.Len()),
	}
}

// Apply normalizes, analyzes, resolves corrections, and commits the batch
// through the domain managers, one element at a time in input order. A
// structural problem aborts before any manager call; a creation failure
// aborts the rest of the batch but preserves the ids already created.
func (im *Importer) Apply(ctx context.Context, raw []byte) *ImportResult {
	batch, conflicts := im.normalizeInput(raw)
	if len(conflicts) > 0 {
		return im.finish(&ImportResult{
			Success:   false,
			Message:   "import aborted: " + conflicts[0].Message,
			Conflicts: conflicts,
		}, raw)
	}

	reports := analyzeBatch(batch)
	if len(reports) > 0 {
		resolution, cancelled := im.resolveReports(ctx, reports)
		if cancelled {
			im.logger.Info("import cancelled at correction step")
			return &ImportResult{Success: false, Message: "import cancelled"}
		}
		switch resolution.Decision {
		case DecisionCorrected:
			applyCorrections(batch, resolution.Reports)
		case DecisionIgnore:
			fillBlankDefaults(batch, reports)
		default:
			return im.finish(&ImportResult{
				Success:   false,
				Message:   "import blocked: missing required fields",
				Conflicts: reportConflicts(reports),
			}, raw)
		}
	}

	result := &ImportResult{}
	for _, kind := range Kinds() {
		elements := batch[kind]
		if len(elements) == 0 {
			continue
		}
		manager, ok := im.managers[kind]
		if !ok {
			result.Success = false
			result.Message = fmt.Sprintf("import failed: no manager for %s", kind)
			result.Conflicts = append(result.Conflicts, Conflict{
				Field:   "exception",
				Message: fmt.Sprintf("no domain manager registered for kind %q", kind),
			})
			return im.finishError(result, raw)
		}
		for index, element := range elements {
			id, err := manager.CreateFromImport(ctx, element)
			if err != nil {
				result.Success = false
				result.Message = fmt.Sprintf("import failed: %v", err)
				result.Conflicts = append(result.Conflicts, Conflict{
					Field:   "exception",
					Message: fmt.Sprintf("%v: %s[%d]: %v", ErrCreation, kind, index, err),
				})
				return im.finishError(result, raw)
			}
			result.InsertedIDs = append(result.InsertedIDs, InsertedID{Type: kind, ID: id})
		}
	}

	result.Success = true
	result.Message = fmt.Sprintf("imported %d element(s)", len(result.InsertedIDs))
	im.logger.Info("import applied", slog.Int("inserted", len(result.InsertedIDs)))
	return result
}

// resolveReports suspends apply on a correction request until the
// configured corrector answers. The second return reports cancellation,
// either explicit or through context expiry.
func (im *Importer) resolveReports(ctx context.Context, reports []AnalysisReport) (Resolution, bool) {
	if im.corrector == nil {
		return Resolution{}, false
	}

	req := newCorrectionRequest(reports)
	im.corrector.Correct(req)
	resolution, err := req.wait(ctx)
	if err != nil || resolution.Decision == DecisionCancel {
		return resolution, true
	}
	return resolution, false
}

func (im *Importer) normalizeInput(raw []byte) (Batch, []Conflict) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return Batch{}, []Conflict{{
			Field:   "root",
			Message: fmt.Sprintf("%v: %v", ErrFormat, err),
		}}
	}

	batch, conflicts := NormalizeBatch(value, im.supported)
	if len(conflicts) > 0 {
		return Batch{}, conflicts
	}
	if batch.Len() == 0 {
		return Batch{}, []Conflict{{
			Field:   "root",
			Message: "no importable elements found",
		}}
	}
	return batch, nil
}

// finish records a warn-level audit entry for any result carrying
// conflicts, then returns it unchanged.
func (im *Importer) finish(result *ImportResult, raw []byte) *ImportResult {
	if len(result.Conflicts) > 0 {
		im.recordAudit(AuditWarn, result, raw)
	}
	return result
}

// finishError records an error-level audit entry for a failed apply.
func (im *Importer) finishError(result *ImportResult, raw []byte) *ImportResult {
	im.recordAudit(AuditError, result, raw)
	return result
}

func (im *Importer) recordAudit(level string, result *ImportResult, raw []byte) {
	if im.audit == nil {
		return
	}
	if _, err := im.audit.Record(level, result, raw); err != nil {
		// A failed audit write must never mask the import outcome.
		im.logger.Warn("audit log write failed", logging.Error(err))
	}
}
