package slugging

// Config is the per-record-type slug configuration. It is immutable once
// built: construct a new one to change anything. A derived record type
// registering its own Config replaces, never merges, the inherited one.
type Config struct {
	source     Source
	regenerate func(Record) bool
	history    bool
}

// ConfigOption configures a Config at construction time.
type ConfigOption func(*Config)

// NewConfig builds an immutable per-type configuration.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithSource sets the source specification for deriving slug text.
// Without it, every assignment falls back to a generated identifier.
func WithSource(src Source) ConfigOption {
	return func(c *Config) {
		c.source = src
	}
}

// WithHistory enables the append-only slug history for the type. The
// engine's store must implement HistoryStore.
func WithHistory() ConfigOption {
	return func(c *Config) {
		c.history = true
	}
}

// WithRegenerate sets the predicate deciding whether an update recomputes
// the slug. Without a predicate, slugs are immutable after first
// assignment: a re-save with a changed source value deliberately keeps
// the existing slug so published URLs stay stable.
func WithRegenerate(fn func(Record) bool) ConfigOption {
	return func(c *Config) {
		c.regenerate = fn
	}
}

// HistoryEnabled reports whether the append-only slug history is on.
func (c *Config) HistoryEnabled() bool {
	return c.history
}
