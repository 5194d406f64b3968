package interchange

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Decision is the caller's answer to a pending correction request.
type Decision int

const (
	// DecisionUnresolved is the zero value: no answer has been given. An
	// apply that reaches commit with it is blocked, never silently applied.
	DecisionUnresolved Decision = iota
	// DecisionCorrected supplies replacement values for the reported fields.
	DecisionCorrected
	// DecisionIgnore proceeds with empty-string defaults for every blank field.
	DecisionIgnore
	// DecisionCancel abandons the import with no mutation performed.
	DecisionCancel
)

// Resolution carries a decision and, for DecisionCorrected, the reports
// with their Value fields filled in.
type Resolution struct {
	Decision Decision
	Reports  []AnalysisReport
}

// CorrectionRequest is the suspension point between analysis and apply: it
// holds the missing-field reports and waits for exactly one resolution.
// Apply blocks on it with no timeout; an unresolved request leaves the
// import pending until the caller answers or the context is cancelled.
type CorrectionRequest struct {
	Reports []AnalysisReport

	once     sync.Once
	resolved chan Resolution
}

func newCorrectionRequest(reports []AnalysisReport) *CorrectionRequest {
	return &CorrectionRequest{
		Reports:  reports,
		resolved: make(chan Resolution, 1),
	}
}

// Resolve answers the request. Only the first resolution counts; later
// calls are ignored.
func (r *CorrectionRequest) Resolve(res Resolution) {
	r.once.Do(func() {
		r.resolved <- res
	})
}

// Cancel abandons the request.
func (r *CorrectionRequest) Cancel() {
	r.Resolve(Resolution{Decision: DecisionCancel})
}

func (r *CorrectionRequest) wait(ctx context.Context) (Resolution, error) {
	select {
	case res := <-r.resolved:
		return res, nil
	case <-ctx.Done():
		return Resolution{Decision: DecisionCancel}, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	}
}

// Corrector decides correction requests on behalf of the caller. Correct is
// invoked with the pending request and must eventually call Resolve (or
// Cancel) on it; it may do so asynchronously.
type Corrector interface {
	Correct(req *CorrectionRequest)
}

// CorrectorFunc adapts a function to the Corrector interface.
type CorrectorFunc func(req *CorrectionRequest)

func (f CorrectorFunc) Correct(req *CorrectionRequest) { f(req) }

// IgnoreMissing resolves every request by proceeding with blank defaults.
func IgnoreMissing() Corrector {
	return CorrectorFunc(func(req *CorrectionRequest) {
		req.Resolve(Resolution{Decision: DecisionIgnore})
	})
}

// CancelOnMissing resolves every request by abandoning the import.
func CancelOnMissing() Corrector {
	return CorrectorFunc(func(req *CorrectionRequest) {
		req.Cancel()
	})
}

// ValuesCorrector resolves requests from a fixed set of corrections keyed
// "kind[index].field" (the same addressing used in conflict fields). Fields
// without a matching key resolve to an empty string.
func ValuesCorrector(values map[string]string) Corrector {
	return CorrectorFunc(func(req *CorrectionRequest) {
		reports := make([]AnalysisReport, len(req.Reports))
		for i, report := range req.Reports {
			items := make([]MissingFieldItem, len(report.Items))
			for j, item := range report.Items {
				fields := make([]MissingField, len(item.Fields))
				for k, field := range item.Fields {
					key := fmt.Sprintf("%s[%d].%s", report.Kind, item.Index, field.Name)
					corrected := field
					if value, ok := values[key]; ok {
						corrected.Value = strings.TrimSpace(value)
					}
					fields[k] = corrected
				}
				items[j] = MissingFieldItem{Index: item.Index, Fields: fields}
			}
			reports[i] = AnalysisReport{Kind: report.Kind, Items: items}
		}
		req.Resolve(Resolution{Decision: DecisionCorrected, Reports: reports})
	})
}
