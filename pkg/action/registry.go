package action

import (
	"sort"
	"sync"
)

// Registry acts as a central inventory for all actions available to the
// router in flat mode. Lookup is a direct key fetch by action name.
type Registry struct {
	mu      sync.RWMutex           // Protects concurrent access to the actions map
	actions map[string]*Definition // Internal map of action name to definition
}

// NewRegistry creates a new flat action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Definition),
	}
}

// Register adds an action to the registry. Re-registering a name replaces
// the previous definition.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[def.Name] = def
}

// Get retrieves an action by name.
func (r *Registry) Get(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.actions[name]
	return def, ok
}

// Lookup implements Resolver. Only single-segment paths can resolve in a
// flat registry.
func (r *Registry) Lookup(path []string) (*Definition, bool) {
	if len(path) != 1 {
		return nil, false
	}
	return r.Get(path[0])
}

// All returns every registered action sorted by name.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.actions))
	for _, def := range r.actions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
