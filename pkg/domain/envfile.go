package domain

// EnvEntry is one assignment found in a .env file.
type EnvEntry struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
	// HasValue is false for assignments such as KEY= or KEY="".
	HasValue bool `json:"has_value"`
	// Line is zero-based.
	Line int    `json:"line"`
	File string `json:"file"`
}
