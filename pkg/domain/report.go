package domain

import "time"

// Severity mirrors the LSP diagnostic severities.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Position is a zero-based line/character pair.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans two positions in a file.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is a single finding about an env file.
type Diagnostic struct {
	File string `json:"file,omitempty"`
	// Variable names the env variable the diagnostic is about.
	Variable string   `json:"variable,omitempty"`
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
}

// Report is the result of checking a workspace.
type Report struct {
	Workspace   string       `json:"workspace"`
	CheckedAt   time.Time    `json:"checked_at"`
	EnvFiles    []string     `json:"env_files"`
	Variables   int          `json:"variables"`
	Missing     []Variable   `json:"missing"`
	Unused      []EnvEntry   `json:"unused"`
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Sealed holds the encrypted form of a report at rest. A sealed report
	// keeps only Workspace and CheckedAt in the clear.
	Sealed []byte `json:"sealed,omitempty"`
}

// OK reports whether no required variable is missing.
func (r *Report) OK() bool {
	return len(r.Missing) == 0
}
