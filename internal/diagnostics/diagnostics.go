// Package diagnostics turns validation findings into editor-style diagnostics.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/aretw0/envcheck/internal/validator"
	"github.com/aretw0/envcheck/pkg/domain"
)

const (
	// Source is reported as the origin of every diagnostic.
	Source = "env-checker"

	CodeMissing = "missing-env-var"
	CodeUnused  = "unused-env-var"
	CodeInvalid = "invalid-env-var"
)

// MissingVar describes a required variable absent from the env files.
// It is anchored at the start of the file.
func MissingVar(err *validator.MissingError) domain.Diagnostic {
	var msg strings.Builder
	fmt.Fprintf(&msg, "Missing required environment variable: '%s'", err.Variable.Name)
	if err.Variable.Description != "" {
		fmt.Fprintf(&msg, "\n  Description: %s", err.Variable.Description)
	}
	if err.Variable.HasDefault {
		fmt.Fprintf(&msg, "\n  Default: %s", err.Variable.Default)
	}

	return domain.Diagnostic{
		Variable: err.Variable.Name,
		Severity: domain.SeverityError,
		Code:     CodeMissing,
		Source:   Source,
		Message:  msg.String(),
	}
}

// UnusedVar describes an env entry that no schema declares.
// The range covers the variable name on its line.
func UnusedVar(entry domain.EnvEntry) domain.Diagnostic {
	line := entry.Line
	if line < 0 {
		line = 0
	}
	return domain.Diagnostic{
		File:     entry.File,
		Variable: entry.Name,
		Range: domain.Range{
			Start: domain.Position{Line: line, Character: 0},
			End:   domain.Position{Line: line, Character: len(entry.Name)},
		},
		Severity: domain.SeverityInformation,
		Code:     CodeUnused,
		Source:   Source,
		Message:  fmt.Sprintf("Environment variable '%s' is not defined in any schema", entry.Name),
	}
}

// InvalidValue describes an entry whose value does not parse as the
// declared type. The range covers the variable name.
func InvalidValue(entry domain.EnvEntry, expected domain.VarType) domain.Diagnostic {
	d := UnusedVar(entry)
	d.Severity = domain.SeverityWarning
	d.Code = CodeInvalid
	d.Message = fmt.Sprintf("Environment variable '%s' should be of type %s, got %q", entry.Name, expected, entry.Value)
	return d
}

// FromResult builds the diagnostics for one env file. Missing variables
// are reported against file; unused entries only when they come from it.
func FromResult(res validator.Result, file string) []domain.Diagnostic {
	out := make([]domain.Diagnostic, 0, len(res.Errors)+len(res.Unused))
	for _, e := range res.Errors {
		d := MissingVar(e)
		d.File = file
		out = append(out, d)
	}
	for _, u := range res.Unused {
		if file != "" && u.File != file {
			continue
		}
		out = append(out, UnusedVar(u))
	}
	return out
}
