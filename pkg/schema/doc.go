// Package schema declares typed configuration fields and validates raw
// input against them.
//
// A Schema is an ordered list of uniquely named fields. Each field has a
// type (string, boolean, number, integer), an optional default, a
// description, and optional registry metadata. Validation applies defaults
// for absent fields and reports every failure at once:
//
//	s := schema.MustNew(
//	    schema.Field{Name: "apiUrl", Type: schema.String(), Description: "API endpoint URL"},
//	    schema.Field{Name: "debug", Type: schema.Bool(), Default: false, HasDefault: true},
//	)
//
//	values, err := s.Validate(map[string]any{"apiUrl": "https://x"})
//	if err != nil {
//	    for key, fe := range schema.FieldErrors(err) {
//	        // key: field name, fe.Expected: declared type
//	    }
//	}
//
// Values read from the process environment are strings; ValidateEnv
// coerces them to the declared types before applying the same rules.
//
// Field metadata is kept out of the validation path. Schema.Register
// copies it into an explicit registry.Registry that tooling (example
// file generators, grouping in editors) receives as an argument.
package schema
