// Package appenv declares the application's environment schema.
//
// Declare builds the schema and its metadata registry together and hands
// both to the caller; nothing is kept in package state.
package appenv

import (
	"fmt"

	"github.com/aretw0/envcheck/pkg/registry"
	"github.com/aretw0/envcheck/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// Field names.
const (
	MySecret = "mySecret"
	Debug    = "debug"
	APIURL   = "apiUrl"
)

// Config is the typed result of a successful validation.
type Config struct {
	MySecret string `mapstructure:"mySecret" json:"mySecret"`
	Debug    bool   `mapstructure:"debug" json:"debug"`
	APIURL   string `mapstructure:"apiUrl" json:"apiUrl"`
}

// Fields returns the declared fields in order.
func Fields() []schema.Field {
	return []schema.Field{
		{
			Name:        MySecret,
			Type:        schema.String(),
			Default:     "defaultValue",
			HasDefault:  true,
			Description: "This is a secret value",
			Meta:        &registry.Metadata{EnvType: registry.Runtime, Group: "Secrets"},
		},
		{
			Name:        Debug,
			Type:        schema.Bool(),
			Default:     false,
			HasDefault:  true,
			Description: "Enable debug mode",
			Meta:        &registry.Metadata{EnvType: registry.BuildTime, Group: "Settings"},
		},
		{
			Name:        APIURL,
			Type:        schema.String(),
			Description: "API endpoint URL",
			Meta:        &registry.Metadata{EnvType: registry.Runtime, Group: "API"},
		},
	}
}

// Declare builds the registry, then the schema, and registers every field.
func Declare() (*schema.Schema, *registry.Registry, error) {
	reg := registry.New()

	s, err := schema.New(Fields()...)
	if err != nil {
		return nil, nil, fmt.Errorf("declare schema: %w", err)
	}
	if err := s.Register(reg); err != nil {
		return nil, nil, fmt.Errorf("register metadata: %w", err)
	}
	return s, reg, nil
}

// Load validates an untyped mapping and decodes it into a Config.
// Validation failures are returned as *schema.AggregateError.
func Load(input map[string]any) (*Config, error) {
	s, _, err := Declare()
	if err != nil {
		return nil, err
	}
	values, err := s.Validate(input)
	if err != nil {
		return nil, err
	}
	return decode(values)
}

// LookupFunc resolves one environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv reads every declared field through lookup, coerces the raw
// strings and decodes the result into a Config.
func LoadEnv(lookup LookupFunc) (*Config, error) {
	s, _, err := Declare()
	if err != nil {
		return nil, err
	}

	raw := make(map[string]string, s.Len())
	for _, name := range s.Names() {
		if v, ok := lookup(name); ok {
			raw[name] = v
		}
	}

	values, err := s.ValidateEnv(raw)
	if err != nil {
		return nil, err
	}
	return decode(values)
}

func decode(values schema.Values) (*Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(values)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
