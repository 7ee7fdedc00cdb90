package schema

import (
	"fmt"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/registry"
)

// Field declares one named configurable value.
type Field struct {
	Name string
	Type Type
	// Default is applied when the field is absent. Only read when HasDefault is set.
	Default    any
	HasDefault bool
	// Optional fields without a default are simply left out of the result.
	Optional    bool
	Description string
	// Meta is registered into a registry by Schema.Register when non-nil.
	Meta *registry.Metadata
}

// Schema is an ordered set of uniquely named fields.
// It is immutable once built.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from fields, keeping their order.
// It rejects unnamed or untyped fields, duplicate names, and defaults
// that do not satisfy their own type.
func New(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema: field without a name")
		}
		if f.Type == nil {
			return nil, fmt.Errorf("field %s: type is nil", f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("field %s: declared more than once", f.Name)
		}
		if f.HasDefault {
			if err := f.Type.Validate(f.Default); err != nil {
				return nil, fmt.Errorf("field %s: invalid default: %w", f.Name, err)
			}
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for package-level declarations.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Register adds the metadata of every field that carries one to reg.
func (s *Schema) Register(reg *registry.Registry) error {
	for _, f := range s.fields {
		if f.Meta == nil {
			continue
		}
		if err := reg.Register(f.Name, *f.Meta); err != nil {
			return err
		}
	}
	return nil
}

// Variables flattens the schema into the shared variable model.
func (s *Schema) Variables() []domain.Variable {
	vars := make([]domain.Variable, 0, len(s.fields))
	for _, f := range s.fields {
		v := domain.Variable{
			Name:        f.Name,
			Type:        VarType(f.Type),
			Description: f.Description,
			HasDefault:  f.HasDefault,
			Optional:    f.Optional || f.HasDefault,
		}
		if f.HasDefault {
			v.Default = fmt.Sprint(f.Default)
		}
		if f.Meta != nil {
			v.Group = f.Meta.Group
			v.EnvType = string(f.Meta.EnvType)
		}
		vars = append(vars, v)
	}
	return vars
}
