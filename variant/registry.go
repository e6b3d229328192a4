package variant

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Registry stores generated families. It is append-only: a family is
// registered completely or not at all, and never replaced.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*Set
	names    map[string]*Variant
	logger   *slog.Logger

	watchDebounce time.Duration
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		families: make(map[string]*Set),
		names:    make(map[string]*Variant),
		logger:   slog.Default(),

		watchDebounce: defaultWatchDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry { return defaultRegistry }

// Generate builds every variant of d and registers them together.
//
// Generating a family again with an equal descriptor returns the existing
// set. A different descriptor under an existing name, or a variant name
// already taken by another family, is a ConfigurationError. On any error
// nothing is registered.
func (r *Registry) Generate(d Descriptor) (*Set, error) {
	if existing, ok, err := r.existing(d); ok || err != nil {
		return existing, err
	}

	set, err := build(d)
	if err != nil {
		r.logger.Debug("variant generation failed",
			slog.String("family", d.Name),
			slog.Any("error", err))
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have registered the family while we were building.
	if prev, ok := r.families[d.Name]; ok {
		if prev.desc.Equal(d) {
			return prev, nil
		}
		return nil, conflict(d.Name)
	}
	for _, v := range set.variants {
		if other, taken := r.names[v.name]; taken {
			return nil, &ConfigurationError{
				Family: d.Name,
				Reason: fmt.Sprintf("variant name %q already belongs to family %q", v.name, other.family),
			}
		}
	}

	r.families[d.Name] = set
	for _, v := range set.variants {
		r.names[v.name] = v
	}

	r.logger.Debug("generated variants",
		slog.String("family", d.Name),
		slog.Int("flags", len(d.Flags)),
		slog.Int("variants", set.Len()))
	return set, nil
}

func (r *Registry) existing(d Descriptor) (*Set, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prev, ok := r.families[d.Name]
	if !ok {
		return nil, false, nil
	}
	if !prev.desc.Equal(d) {
		return nil, false, conflict(d.Name)
	}
	return prev, true, nil
}

func conflict(family string) error {
	return &ConfigurationError{Family: family, Reason: "already generated from a different descriptor"}
}

// MustGenerate is like Generate but panics on error.
// Use it for families declared in package initialization.
func (r *Registry) MustGenerate(d Descriptor) *Set {
	set, err := r.Generate(d)
	if err != nil {
		panic(fmt.Sprintf("variant.MustGenerate(%q): %v", d.Name, err))
	}
	return set
}

// Family returns the generated set of a family.
func (r *Registry) Family(name string) (*Set, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.families[name]
	return set, ok
}

// Lookup returns the variant of a family for an assignment given in the
// family's flag declaration order.
func (r *Registry) Lookup(family string, assignment ...bool) (*Variant, error) {
	set, ok := r.Family(family)
	if !ok {
		return nil, &LookupError{Family: family, Name: Name(family, assignment...), Reason: "family not generated"}
	}
	return set.Lookup(assignment...)
}

// LookupName returns a variant by its name, as built by Name.
func (r *Registry) LookupName(name string) (*Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.names[name]
	if !ok {
		return nil, &LookupError{Name: name, Reason: "no such variant"}
	}
	return v, nil
}

// Families returns the names of all generated families, sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a family has been generated.
func (r *Registry) IsRegistered(family string) bool {
	_, ok := r.Family(family)
	return ok
}

// Clear removes every family.
// This is primarily useful for testing.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.families = make(map[string]*Set)
	r.names = make(map[string]*Variant)
}

// Generate builds and registers a family in the default registry.
func Generate(d Descriptor) (*Set, error) {
	return defaultRegistry.Generate(d)
}

// MustGenerate builds and registers a family in the default registry,
// panicking on error.
func MustGenerate(d Descriptor) *Set {
	return defaultRegistry.MustGenerate(d)
}

// Lookup returns a variant from the default registry.
func Lookup(family string, assignment ...bool) (*Variant, error) {
	return defaultRegistry.Lookup(family, assignment...)
}

// LookupName returns a variant from the default registry by name.
func LookupName(name string) (*Variant, error) {
	return defaultRegistry.LookupName(name)
}

// Families returns the families generated in the default registry.
func Families() []string {
	return defaultRegistry.Families()
}
