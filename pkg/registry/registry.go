package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// EnvType classifies when a variable's value must be known.
type EnvType string

const (
	// BuildTime values are baked in when the artifact is built.
	BuildTime EnvType = "build-time"
	// Runtime values may differ between deployments of the same build.
	Runtime EnvType = "runtime"
)

// ErrAlreadyRegistered is returned when a field is registered twice.
var ErrAlreadyRegistered = errors.New("field already registered")

// ErrInvalidEnvType is returned for env types other than BuildTime and Runtime.
var ErrInvalidEnvType = errors.New("invalid env type")

// Valid reports whether t is one of the known env types.
func (t EnvType) Valid() bool {
	return t == BuildTime || t == Runtime
}

// ParseEnvType converts a string such as "build-time" into an EnvType.
func ParseEnvType(s string) (EnvType, error) {
	t := EnvType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEnvType, s)
	}
	return t, nil
}

// Metadata is the descriptive tuple attached to a field.
type Metadata struct {
	EnvType EnvType `json:"envType" yaml:"envType" mapstructure:"envType"`
	Group   string  `json:"group" yaml:"group" mapstructure:"group"`
}

// Registry associates field names with their metadata.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Metadata
	order   []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Metadata),
	}
}

// Register records the metadata for a field.
// Registering the same name twice fails with ErrAlreadyRegistered; the
// first registration is kept.
func (r *Registry) Register(name string, meta Metadata) error {
	if name == "" {
		return fmt.Errorf("register: empty field name")
	}
	if !meta.EnvType.Valid() {
		return fmt.Errorf("register %q: %w: %q", name, ErrInvalidEnvType, meta.EnvType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrAlreadyRegistered)
	}
	r.entries[name] = meta
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the metadata registered for name.
func (r *Registry) Lookup(name string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.entries[name]
	return meta, ok
}

// Names returns the registered field names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Groups returns the distinct groups, sorted.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.entries))
	for _, meta := range r.entries {
		seen[meta.Group] = struct{}{}
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
