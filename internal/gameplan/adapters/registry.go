package adapters

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// Registry maps area keys in gameplan.yaml to adapter implementations.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its name.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Name()] = a
	log.Debug().Str("adapter", a.Name()).Msg("adapter registered")
}

// Get returns the adapter for an area key.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns the registered adapter names in sorted order, so batch
// runs process areas deterministically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
