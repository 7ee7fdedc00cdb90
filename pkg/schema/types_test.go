package schema

import (
	"testing"

	"github.com/aretw0/envcheck/pkg/domain"
)

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{42, true},
		{3.14, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	if typ.Name() != "boolean" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "boolean")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{true, false},
		{false, false},
		{"true", true},
		{"yes", true},
		{1, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int8(42), false},
		{int64(42), false},
		{uint(42), false},
		{float64(42), false},  // whole number
		{float64(42.5), true}, // not whole
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestNumberType(t *testing.T) {
	typ := Number()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{3.14, false},
		{float32(3.14), false},
		{42, false},
		{"3.14", true},
		{false, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		typ     Type
		raw     string
		want    any
		wantErr bool
	}{
		{String(), "https://x", "https://x", false},
		{Bool(), "true", true, false},
		{Bool(), "0", false, false},
		{Bool(), " FALSE ", false, false},
		{Bool(), "yes", nil, true},
		{Int(), "8080", int64(8080), false},
		{Int(), "80.5", nil, true},
		{Number(), "0.25", 0.25, false},
		{Number(), "abc", nil, true},
	}

	for _, tt := range tests {
		got, err := tt.typ.Coerce(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s.Coerce(%q) error = %v, wantErr %v", tt.typ.Name(), tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s.Coerce(%q) = %v (%T), want %v (%T)", tt.typ.Name(), tt.raw, got, got, tt.want, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantErr  bool
		wantName string
	}{
		{"string", false, "string"},
		{"str", false, "string"},
		{"bool", false, "boolean"},
		{"Boolean", false, "boolean"},
		{"int", false, "integer"},
		{"integer", false, "integer"},
		{"float", false, "number"},
		{"number", false, "number"},
		{"invalid", true, ""},
		{"[string]", true, ""},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && typ.Name() != tt.wantName {
			t.Errorf("ParseType(%q) Name() = %q, want %q", tt.input, typ.Name(), tt.wantName)
		}
	}
}

func TestVarType(t *testing.T) {
	if got := VarType(Bool()); got != domain.TypeBoolean {
		t.Errorf("VarType(Bool()) = %q", got)
	}
	if got := VarType(Int()); got != domain.TypeInteger {
		t.Errorf("VarType(Int()) = %q", got)
	}
	if got := VarType(Number()); got != domain.TypeNumber {
		t.Errorf("VarType(Number()) = %q", got)
	}
	if got := VarType(String()); got != domain.TypeString {
		t.Errorf("VarType(String()) = %q", got)
	}
}
