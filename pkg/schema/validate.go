package schema

// Values is a validated configuration keyed by field name.
type Values map[string]any

// Validate checks input against the schema and returns the typed values.
// Absent fields take their default; absent optional fields are omitted.
// All failures are returned together as an *AggregateError.
// Keys that the schema does not declare are ignored.
func (s *Schema) Validate(input map[string]any) (Values, error) {
	return s.validate(func(f Field) (any, bool, error) {
		value, exists := input[f.Name]
		if !exists {
			return nil, false, nil
		}
		return value, true, f.Type.Validate(value)
	})
}

// ValidateEnv is Validate for raw environment strings.
// Each value is coerced by its field type; an empty string counts as absent.
func (s *Schema) ValidateEnv(env map[string]string) (Values, error) {
	return s.validate(func(f Field) (any, bool, error) {
		raw, exists := env[f.Name]
		if !exists || raw == "" {
			return nil, false, nil
		}
		value, err := f.Type.Coerce(raw)
		if err != nil {
			return raw, true, err
		}
		return value, true, nil
	})
}

// lookupFunc resolves one field. It returns the value, whether it was
// present, and a type error for a present value.
type lookupFunc func(f Field) (any, bool, error)

func (s *Schema) validate(lookup lookupFunc) (Values, error) {
	out := make(Values, len(s.fields))
	var errs []error

	for _, f := range s.fields {
		value, present, err := lookup(f)
		if !present {
			switch {
			case f.HasDefault:
				out[f.Name] = f.Default
			case f.Optional:
			default:
				errs = append(errs, &ValidationError{
					Key:      f.Name,
					Reason:   ReasonRequired,
					Expected: f.Type.Name(),
				})
			}
			continue
		}

		if err != nil {
			errs = append(errs, &ValidationError{
				Key:      f.Name,
				Reason:   err.Error(),
				Expected: f.Type.Name(),
				Value:    value,
			})
			continue
		}
		out[f.Name] = value
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}
