package schema

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/envcheck/pkg/registry"
)

// fieldJSON is the wire form of a Field.
type fieldJSON struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Default     any                `json:"default,omitempty"`
	HasDefault  bool               `json:"has_default,omitempty"`
	Optional    bool               `json:"optional,omitempty"`
	Description string             `json:"description,omitempty"`
	Meta        *registry.Metadata `json:"meta,omitempty"`
}

// MarshalJSON serializes the schema as an ordered array of field descriptors.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	raw := make([]fieldJSON, 0, len(s.fields))
	for _, f := range s.fields {
		raw = append(raw, fieldJSON{
			Name:        f.Name,
			Type:        f.Type.Name(),
			Default:     f.Default,
			HasDefault:  f.HasDefault,
			Optional:    f.Optional,
			Description: f.Description,
			Meta:        f.Meta,
		})
	}

	return json.Marshal(raw)
}

// UnmarshalJSON deserializes the schema from an array of field descriptors.
// Numeric defaults of integer fields are converted back from float64.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	var raw []fieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := make([]Field, 0, len(raw))
	for _, r := range raw {
		t, err := ParseType(r.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", r.Name, err)
		}
		def := r.Default
		if f, ok := def.(float64); ok && t.Name() == "integer" {
			def = int64(f)
		}
		fields = append(fields, Field{
			Name:        r.Name,
			Type:        t,
			Default:     def,
			HasDefault:  r.HasDefault,
			Optional:    r.Optional,
			Description: r.Description,
			Meta:        r.Meta,
		})
	}

	parsed, err := New(fields...)
	if err != nil {
		return err
	}

	*s = *parsed
	return nil
}
