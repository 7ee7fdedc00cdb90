package domain

import "errors"

// ErrVariableNotFound is returned when a variable is not declared by any schema.
var ErrVariableNotFound = errors.New("variable not found")

// ErrReportNotFound is returned when no report is stored for a workspace.
var ErrReportNotFound = errors.New("report not found")
