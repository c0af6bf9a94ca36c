package mathbox

// Setting configures Parse, Build and Layout.
type Setting func(*config)

type config struct {
	displayMode bool
	mode        Mode
	registry    *Registry
	metrics     Metrics
	maxDepth    int
	options     *Options
}

func newConfig(settings []Setting) config {
	cfg := config{mode: MathMode, maxDepth: DefaultMaxDepth}
	for _, s := range settings {
		if s != nil {
			s(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	if cfg.metrics == nil {
		cfg.metrics = DefaultMetrics()
	}
	return cfg
}

// rootOptions are the options the top level is built with.
func (c config) rootOptions() Options {
	if c.options != nil {
		return *c.options
	}
	opts := DefaultOptions()
	if c.displayMode {
		opts = opts.WithStyle(StyleDisplay)
	}
	return opts
}

// WithDisplayMode builds the top level in display style instead of text
// style.
func WithDisplayMode(enabled bool) Setting {
	return func(cfg *config) {
		cfg.displayMode = enabled
	}
}

// WithMode sets the mode the input starts in. The default is math mode.
func WithMode(mode Mode) Setting {
	return func(cfg *config) {
		cfg.mode = mode
	}
}

// WithRegistry replaces the default function registry.
func WithRegistry(r *Registry) Setting {
	return func(cfg *config) {
		cfg.registry = r
	}
}

// WithMetrics replaces the built-in font metrics.
func WithMetrics(m Metrics) Setting {
	return func(cfg *config) {
		cfg.metrics = m
	}
}

// WithMaxDepth limits nesting while parsing and building. Values below one
// restore the default.
func WithMaxDepth(depth int) Setting {
	return func(cfg *config) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		cfg.maxDepth = depth
	}
}

// WithOptions sets the top level options of Build, overriding
// WithDisplayMode.
func WithOptions(opts Options) Setting {
	return func(cfg *config) {
		cfg.options = &opts
	}
}
