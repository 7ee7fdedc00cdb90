package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/envcheck/pkg/domain"
)

// OtherGroup collects variables that declare no group.
const OtherGroup = "Other"

// MissingError reports a required variable absent from every env file.
type MissingError struct {
	Variable domain.Variable
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Variable.Name)
}

// Result is the outcome of comparing declarations with env entries.
type Result struct {
	Errors []*MissingError
	// Entries holds the first entry seen for each name.
	Entries map[string]domain.EnvEntry
	// Unused lists entries that no schema declares, in input order.
	Unused    []domain.EnvEntry
	Variables []domain.Variable
}

// Missing returns the variables behind Errors.
func (r Result) Missing() []domain.Variable {
	out := make([]domain.Variable, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Variable)
	}
	return out
}

// Validate checks that every required variable appears in entries.
// A variable counts as present even when its value is empty.
func Validate(vars []domain.Variable, entries []domain.EnvEntry) Result {
	res := Result{
		Entries:   make(map[string]domain.EnvEntry, len(entries)),
		Variables: vars,
	}

	for _, e := range entries {
		if _, ok := res.Entries[e.Name]; !ok {
			res.Entries[e.Name] = e
		}
	}

	declared := make(map[string]bool, len(vars))
	for _, v := range vars {
		declared[v.Name] = true
		if v.Optional {
			continue
		}
		if _, ok := res.Entries[v.Name]; !ok {
			res.Errors = append(res.Errors, &MissingError{Variable: v})
		}
	}

	reported := make(map[string]bool)
	for _, e := range entries {
		if declared[e.Name] || reported[e.Name] {
			continue
		}
		reported[e.Name] = true
		res.Unused = append(res.Unused, e)
	}

	return res
}

// VarGroup is a named set of variables.
type VarGroup struct {
	Name      string
	Variables []domain.Variable
}

// Group buckets variables by group. Groups are sorted by name, variables
// by name within a group, and ungrouped variables land in OtherGroup.
// rename, when non-nil, maps declared group names to display names.
func Group(vars []domain.Variable, rename func(string) string) []VarGroup {
	buckets := make(map[string][]domain.Variable)
	for _, v := range vars {
		name := v.Group
		if name != "" && rename != nil {
			name = rename(name)
		}
		if name == "" {
			name = OtherGroup
		}
		buckets[name] = append(buckets[name], v)
	}

	groups := make([]VarGroup, 0, len(buckets))
	for name, vs := range buckets {
		sort.SliceStable(vs, func(i, j int) bool { return vs[i].Name < vs[j].Name })
		groups = append(groups, VarGroup{Name: name, Variables: vs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
