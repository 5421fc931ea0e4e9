package construct

// Options controls a single construction call.
type Options struct {
	// NilToEmpty makes Make treat nil input as an empty mapping, so defaults
	// apply and required fields are checked. When false, nil input returns a
	// nil record with no error.
	NilToEmpty bool
	// CheckKeys upgrades unknown input keys and missing required fields to
	// hard KeyError failures that bypass field aggregation.
	CheckKeys bool
	// Parallelism bounds the number of goroutines used by MakeSlice. Zero or
	// one keeps list construction sequential. Results and error reports stay
	// index-keyed and deterministic either way.
	Parallelism int
}

// DefaultOptions returns the library-wide defaults.
func DefaultOptions() Options {
	return Options{NilToEmpty: true, CheckKeys: false}
}

// Option overrides one construction option at a call site or at schema build
// time. Call-site options win over schema-level defaults, which win over
// DefaultOptions.
type Option func(*Options)

// WithNilToEmpty sets whether nil input is treated as an empty mapping.
func WithNilToEmpty(v bool) Option {
	return func(o *Options) { o.NilToEmpty = v }
}

// WithCheckKeys sets whether unknown or missing keys are hard failures.
func WithCheckKeys(v bool) Option {
	return func(o *Options) { o.CheckKeys = v }
}

// WithParallelism bounds worker goroutines for list construction.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

// resolveOptions layers call-site overrides on top of the schema defaults.
func (s *Schema) resolveOptions(opts []Option) Options {
	o := s.opts
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
