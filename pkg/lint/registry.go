package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Factory constructs a fresh rule instance. Rules carry per-file option state
// set by Configure, so the registry hands out a new instance per lint run
// rather than sharing one across goroutines.
type Factory func() Rule

// Registry holds all registered lint rules.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a rule factory to the registry.
// If a rule with the same ID already exists, it is replaced.
func (r *Registry) Register(factory Factory) {
	id := factory().ID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = factory
}

// Get returns a fresh instance of the rule with the given ID.
func (r *Registry) Get(id string) (Rule, bool) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Rules returns fresh instances of all registered rules, sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.factories))
	for _, factory := range r.factories {
		result = append(result, factory())
	}

	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
