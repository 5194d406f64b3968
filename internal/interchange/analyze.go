package interchange

import (
	"fmt"
	"strings"
)

// requiredFields is the per-kind subset whose absence blocks an apply.
var requiredFields = map[Kind][]string{
	KindExercise:  {"nom", "description"},
	KindTraining:  {"titre"},
	KindWarmup:    {"nom", "description"},
	KindSituation: {"nom", "type"},
}

// Analyze inspects each element of one kind and reports every required
// field that is absent, null, or blank. Items keep the element's original
// array index; the output order follows the input order, so repeated calls
// over the same input produce the same report.
func Analyze(kind Kind, elements []map[string]any) []MissingFieldItem {
	required := requiredFields[kind]
	if len(required) == 0 {
		return nil
	}

	var items []MissingFieldItem
	for index, element := range elements {
		var fields []MissingField
		for _, name := range required {
			value, present := element[name]
			if !present || isBlank(value) {
				fields = append(fields, MissingField{
					Name:     name,
					Value:    currentString(value),
					Required: true,
				})
			}
		}
		if len(fields) > 0 {
			items = append(items, MissingFieldItem{Index: index, Fields: fields})
		}
	}
	return items
}

// analyzeBatch runs the analyzer over every kind group in canonical order.
func analyzeBatch(batch Batch) []AnalysisReport {
	var reports []AnalysisReport
	for _, kind := range Kinds() {
		if items := Analyze(kind, batch[kind]); len(items) > 0 {
			reports = append(reports, AnalysisReport{Kind: kind, Items: items})
		}
	}
	return reports
}

// reportConflicts flattens analyzer reports into the conflict list carried
// by an ImportResult.
func reportConflicts(reports []AnalysisReport) []Conflict {
	var conflicts []Conflict
	for _, report := range reports {
		for _, item := range report.Items {
			for _, field := range item.Fields {
				conflicts = append(conflicts, Conflict{
					Field:   fmt.Sprintf("%s[%d].%s", report.Kind, item.Index, field.Name),
					Message: "required field is blank",
				})
			}
		}
	}
	return conflicts
}

// applyCorrections writes corrected values back into the batch by index.
func applyCorrections(batch Batch, reports []AnalysisReport) {
	for _, report := range reports {
		elements := batch[report.Kind]
		for _, item := range report.Items {
			if item.Index < 0 || item.Index >= len(elements) {
				continue
			}
			for _, field := range item.Fields {
				if !field.Required {
					continue
				}
				elements[item.Index][field.Name] = field.Value
			}
		}
	}
}

// fillBlankDefaults resolves every reported missing field to an empty
// string, the explicit "proceed with blanks" decision.
func fillBlankDefaults(batch Batch, reports []AnalysisReport) {
	for _, report := range reports {
		elements := batch[report.Kind]
		for _, item := range report.Items {
			if item.Index < 0 || item.Index >= len(elements) {
				continue
			}
			for _, field := range item.Fields {
				current, present := elements[item.Index][field.Name]
				if !present || isBlank(current) {
					elements[item.Index][field.Name] = ""
				}
			}
		}
	}
}

func isBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}

func currentString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
