package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/envcheck/pkg/domain"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "boolean").
	Name() string
	// Validate checks if an already typed value conforms to this type.
	Validate(value any) error
	// Coerce converts a raw environment string into a value of this type.
	Coerce(raw string) (any, error)
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return string(domain.TypeString) }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

func (t *StringType) Coerce(raw string) (any, error) { return raw, nil }

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return string(domain.TypeBoolean) }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

// Coerce accepts the spellings understood by strconv.ParseBool.
func (t *BoolType) Coerce(raw string) (any, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("expected boolean, got %q", raw)
	}
	return b, nil
}

// NumberType validates floating-point values. Integers are accepted too.
type NumberType struct{}

func (t *NumberType) Name() string { return string(domain.TypeNumber) }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

func (t *NumberType) Coerce(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, fmt.Errorf("expected number, got %q", raw)
	}
	return f, nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return string(domain.TypeInteger) }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected integer, got float (not a whole number)")
	default:
		return fmt.Errorf("expected integer, got %T", value)
	}
}

func (t *IntType) Coerce(raw string) (any, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("expected integer, got %q", raw)
	}
	return i, nil
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Number creates a number type validator.
func Number() Type { return &NumberType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// ParseType converts a type name to a Type.
// It accepts the spellings used by schema files: "string", "str",
// "bool", "boolean", "int", "integer", "number", "float".
func ParseType(typeStr string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(typeStr)) {
	case "string", "str":
		return String(), nil
	case "bool", "boolean":
		return Bool(), nil
	case "int", "integer":
		return Int(), nil
	case "number", "float":
		return Number(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// VarType maps a Type to the shared variable model. Unknown types map to string.
func VarType(t Type) domain.VarType {
	switch domain.VarType(t.Name()) {
	case domain.TypeBoolean:
		return domain.TypeBoolean
	case domain.TypeNumber:
		return domain.TypeNumber
	case domain.TypeInteger:
		return domain.TypeInteger
	default:
		return domain.TypeString
	}
}
