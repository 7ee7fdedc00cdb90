package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key      string // Field name
	Reason   string // Human-readable reason for failure
	Expected string // Name of the declared type
	Value    any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s (expected %s)", e.Key, e.Reason, e.Expected)
	}
	// Type errors already name the type they got.
	if strings.Contains(e.Reason, "got ") {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// Missing reports whether the failure is an absent required field.
func (e *ValidationError) Missing() bool {
	return e.Reason == ReasonRequired
}

// ReasonRequired is the Reason of a ValidationError for an absent required field.
const ReasonRequired = "required"

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is or wraps an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// FieldErrors returns the per-field failures of err keyed by field name.
func FieldErrors(err error) map[string]*ValidationError {
	errs := ValidationErrors(err)
	if errs == nil {
		return nil
	}
	out := make(map[string]*ValidationError, len(errs))
	for _, e := range errs {
		var ve *ValidationError
		if errors.As(e, &ve) {
			out[ve.Key] = ve
		}
	}
	return out
}
