package domain

// VarType is the value type of an environment variable.
type VarType string

const (
	TypeString  VarType = "string"
	TypeBoolean VarType = "boolean"
	TypeNumber  VarType = "number"
	TypeInteger VarType = "integer"
)

// Variable is a declared environment variable, independent of where it was declared.
type Variable struct {
	Name        string  `json:"name"`
	Type        VarType `json:"type"`
	Description string  `json:"description,omitempty"`
	// Default is the textual default, as it would be written in a .env file.
	Default    string `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`
	Optional   bool   `json:"optional"`
	Group      string `json:"group,omitempty"`
	// EnvType is "build-time" or "runtime" when the source declares it.
	EnvType string `json:"env_type,omitempty"`
}

// Required reports whether the variable must be present in the environment.
func (v Variable) Required() bool {
	return !v.Optional
}

// SourceKind identifies the flavour of a schema file.
type SourceKind string

const (
	SourceZod      SourceKind = "zod"
	SourcePydantic SourceKind = "pydantic"
	SourceYAML     SourceKind = "yaml"
	SourceGo       SourceKind = "go"
)

// SchemaSource points at a file that declares variables.
type SchemaSource struct {
	Kind SourceKind `json:"kind"`
	Path string     `json:"path"`
}

// ParsedSchema is the set of variables read from one source.
type ParsedSchema struct {
	Source    SchemaSource `json:"source"`
	Variables []Variable   `json:"variables"`
}
