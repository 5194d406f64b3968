package interchange

import "fmt"

// NormalizeBatch folds every accepted input shape into the canonical
// grouped-by-kind batch:
//
//   - a single element object, either an export envelope {meta, data} or
//     the legacy triplet {version, type, data}
//   - an array of such objects, partitioned by kind
//   - an already grouped object keyed by plural kind names
//
// Shapes that resemble none of the above produce an empty batch and no
// conflicts, letting the caller report "nothing importable" instead of
// crashing. Structural problems inside a recognized shape (unknown type,
// unsupported version, malformed element) come back as conflicts and are
// fatal for the whole batch.
func NormalizeBatch(value any, supported string) (Batch, []Conflict) {
	batch := Batch{}

	switch typed := value.(type) {
	case map[string]any:
		if isElementObject(typed) {
			kind, data, conflict := normalizeElement(typed, supported)
			if conflict != nil {
				return Batch{}, []Conflict{*conflict}
			}
			batch[kind] = append(batch[kind], data)
			return batch, nil
		}
		return normalizeGrouped(typed)
	case []any:
		for i, entry := range typed {
			element, ok := entry.(map[string]any)
			if !ok || !isElementObject(element) {
				return Batch{}, []Conflict{{
					Field:   "root",
					Message: fmt.Sprintf("element %d is not an importable object", i),
				}}
			}
			kind, data, conflict := normalizeElement(element, supported)
			if conflict != nil {
				return Batch{}, []Conflict{*conflict}
			}
			batch[kind] = append(batch[kind], data)
		}
		return batch, nil
	default:
		return batch, nil
	}
}

func isElementObject(element map[string]any) bool {
	if _, ok := element["meta"]; ok {
		return true
	}
	_, hasType := element["type"]
	_, hasData := element["data"]
	return hasType && hasData
}

// normalizeElement validates one element object and extracts its kind and
// payload. Both the envelope form and the legacy {version, type, data}
// triplet are accepted; the legacy version field, when present, passes
// through the same compatibility gate as an envelope header.
func normalizeElement(element map[string]any, supported string) (Kind, map[string]any, *Conflict) {
	declaredType := ""
	declaredVersion := ""

	if metaValue, ok := element["meta"]; ok {
		meta, isMap := metaValue.(map[string]any)
		if !isMap {
			return "", nil, &Conflict{Field: "meta", Message: "meta is not an object"}
		}
		declaredType = stringField(meta, "type")
		declaredVersion = stringField(meta, "schema_version")
		if element["data"] == nil {
			return "", nil, &Conflict{Field: "root", Message: "envelope must carry both meta and data"}
		}
	} else {
		declaredType = stringField(element, "type")
		declaredVersion = stringField(element, "version")
		if element["data"] == nil {
			return "", nil, &Conflict{Field: "root", Message: "element must carry both type and data"}
		}
		if declaredVersion == "" {
			declaredVersion = supported
		}
	}

	kind, conflict := validateHeader(declaredType, declaredVersion, supported)
	if conflict != nil {
		return "", nil, conflict
	}

	data, ok := element["data"].(map[string]any)
	if !ok {
		return "", nil, &Conflict{Field: "data", Message: "data is not an object"}
	}

	return kind, data, nil
}

// normalizeGrouped handles the bulk form keyed by plural kind names. A map
// with no recognizable kind key is not a grouped payload and normalizes to
// an empty batch; once one key is recognized, unknown sibling keys are
// structural conflicts.
func normalizeGrouped(grouped map[string]any) (Batch, []Conflict) {
	recognized := false
	for key := range grouped {
		if _, err := ParseKind(key); err == nil {
			recognized = true
			break
		}
	}
	if !recognized {
		return Batch{}, nil
	}

	batch := Batch{}
	for key, value := range grouped {
		kind, err := ParseKind(key)
		if err != nil {
			return Batch{}, []Conflict{{
				Field:   "meta.type",
				Message: fmt.Sprintf("%v: %q", ErrUnknownType, key),
			}}
		}

		entries, ok := value.([]any)
		if !ok {
			return Batch{}, []Conflict{{
				Field:   key,
				Message: fmt.Sprintf("group %q must be an array", key),
			}}
		}
		for i, entry := range entries {
			data, ok := entry.(map[string]any)
			if !ok {
				return Batch{}, []Conflict{{
					Field:   fmt.Sprintf("%s[%d]", kind, i),
					Message: "element is not an object",
				}}
			}
			batch[kind] = append(batch[kind], data)
		}
	}
	return batch, nil
}

func stringField(element map[string]any, key string) string {
	if value, ok := element[key].(string); ok {
		return value
	}
	return ""
}
