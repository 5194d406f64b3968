package interchange

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Source is the origin tag written into every exported envelope.
const Source = "ufm"

// Meta is the envelope header identifying the payload and its schema.
type Meta struct {
	Type          string `json:"type"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    string `json:"exported_at"`
	Source        string `json:"source"`
	OriginPath    string `json:"origin_path"`
}

// Envelope is the portable wire format for one exported entity.
type Envelope struct {
	Meta Meta           `json:"meta"`
	Data map[string]any `json:"data"`
}

// Portable is the serialization hook an entity may expose to control its
// wire representation. Entities without it are shallow-copied.
type Portable interface {
	PortableFields() map[string]any
}

// EncodeEnvelope seals an entity of the given kind into an indented JSON
// envelope document.
func EncodeEnvelope(kind Kind, id string, entity any, at time.Time) ([]byte, error) {
	data, err := portableFields(entity)
	if err != nil {
		return nil, err
	}
	envelope := Envelope{
		Meta: Meta{
			Type:          string(kind),
			SchemaVersion: SchemaVersion,
			ExportedAt:    at.UTC().Format(time.RFC3339),
			Source:        Source,
			OriginPath:    fmt.Sprintf("%s/%s", kind, id),
		},
		Data: data,
	}
	encoded, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return append(encoded, '\n'), nil
}

func portableFields(entity any) (map[string]any, error) {
	switch value := entity.(type) {
	case Portable:
		return value.PortableFields(), nil
	case map[string]any:
		return maps.Clone(value), nil
	default:
		encoded, err := json.Marshal(entity)
		if err != nil {
			return nil, fmt.Errorf("serialize entity: %w", err)
		}
		var data map[string]any
		if err := json.Unmarshal(encoded, &data); err != nil {
			return nil, fmt.Errorf("serialize entity: %w", err)
		}
		return data, nil
	}
}

// ParsedEnvelope is the validated form of one imported envelope.
type ParsedEnvelope struct {
	Kind    Kind
	Version string
	Data    map[string]any
}

// ParseEnvelope strictly parses raw text as an envelope document and
// validates its header against the registry and the supported schema
// version. A document that is not JSON at all fails with ErrFormat; header
// problems come back as a single descriptive Conflict naming the offending
// value, leaving the error return nil.
func ParseEnvelope(raw []byte, supported string) (*ParsedEnvelope, *Conflict, error) {
	var document map[string]json.RawMessage
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return parseEnvelopeDocument(document, supported)
}

func parseEnvelopeDocument(document map[string]json.RawMessage, supported string) (*ParsedEnvelope, *Conflict, error) {
	metaRaw, hasMeta := document["meta"]
	dataRaw, hasData := document["data"]
	if !hasMeta || !hasData || isJSONNull(metaRaw) || isJSONNull(dataRaw) {
		return nil, &Conflict{Field: "root", Message: "envelope must carry both meta and data"}, nil
	}

	var meta Meta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, &Conflict{Field: "meta", Message: "meta is not an object"}, nil
	}

	kind, conflict := validateHeader(meta.Type, meta.SchemaVersion, supported)
	if conflict != nil {
		return nil, conflict, nil
	}

	var data map[string]any
	if err := json.Unmarshal(dataRaw, &data); err != nil {
		return nil, &Conflict{Field: "data", Message: "data is not an object"}, nil
	}

	return &ParsedEnvelope{Kind: kind, Version: meta.SchemaVersion, Data: data}, nil, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// validateHeader resolves the declared content type and checks the declared
// schema version against the version this build supports. Every header
// validator goes through here so envelope and batch imports agree on what
// they reject and how they describe it.
func validateHeader(declaredType, declaredVersion, supported string) (Kind, *Conflict) {
	kind, err := ParseKind(declaredType)
	if err != nil {
		return "", &Conflict{
			Field:   "meta.type",
			Message: fmt.Sprintf("%v: %q", ErrUnknownType, declaredType),
		}
	}
	if !CompatibleWith(declaredVersion, supported) {
		return "", &Conflict{
			Field:   "meta.schema_version",
			Message: fmt.Sprintf("%v: %q (reader supports %s)", ErrUnsupportedVersion, declaredVersion, supported),
		}
	}
	return kind, nil
}
