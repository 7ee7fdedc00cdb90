package validator

import (
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/schema"
)

// TypeError reports an entry whose value does not coerce to the declared type.
type TypeError struct {
	Entry    domain.EnvEntry
	Expected domain.VarType
}

// CheckTypes coerces each non-empty entry value to its variable's type.
// Presence is not checked here; Validate covers it.
func CheckTypes(vars []domain.Variable, entries map[string]domain.EnvEntry) []TypeError {
	fields := make([]schema.Field, 0, len(vars))
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v.Name] || v.Type == "" || v.Type == domain.TypeString {
			continue
		}
		typ, err := schema.ParseType(string(v.Type))
		if err != nil {
			continue
		}
		seen[v.Name] = true
		fields = append(fields, schema.Field{Name: v.Name, Type: typ, Optional: true})
	}
	if len(fields) == 0 {
		return nil
	}

	s, err := schema.New(fields...)
	if err != nil {
		return nil
	}

	env := make(map[string]string, len(entries))
	for name, e := range entries {
		env[name] = e.Value
	}

	_, err = s.ValidateEnv(env)
	if err == nil {
		return nil
	}

	fieldErrs := schema.FieldErrors(err)
	var out []TypeError
	for _, f := range s.Fields() {
		fe, ok := fieldErrs[f.Name]
		if !ok || fe.Missing() {
			continue
		}
		out = append(out, TypeError{Entry: entries[f.Name], Expected: schema.VarType(f.Type)})
	}
	return out
}
