package slugging

import "sync"

// Registry maps record types to their slug configuration. A derived type
// may declare a parent; lookups walk the parent chain until a registered
// entry is found. Registering a config for a type replaces whatever the
// chain would have produced; entries are never merged.
type Registry struct {
	entries map[string]*Config
	parents map[string]string
	mu      sync.RWMutex
}

// NewRegistry creates an empty configuration registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Config),
		parents: make(map[string]string),
	}
}

// Register declares the slug configuration for a record type, replacing
// any previous or inherited one.
func (r *Registry) Register(recordType string, cfg *Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[recordType] = cfg
}

// Derive declares that child inherits parent's configuration until the
// child registers its own.
func (r *Registry) Derive(child, parent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parents[child] = parent
}

// Lookup returns the effective configuration for a record type: its own
// entry first, then the nearest ancestor's.
func (r *Registry) Lookup(recordType string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for t := recordType; t != "" && !seen[t]; {
		if cfg, ok := r.entries[t]; ok {
			return cfg, true
		}
		seen[t] = true
		t = r.parents[t]
	}
	return nil, false
}
