package des

import "log/slog"

type options struct {
	logger     *slog.Logger
	jointName  string
	specName   string
	supervisor string
}

// Option configures Filter, Canonicalize and Synthesize.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		logger:     slog.Default(),
		jointName:  "Joint Behaviour",
		specName:   "Specification",
		supervisor: "SG",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the structured logger used by a pass or the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNames overrides the model names Synthesize gives the joint behaviour, the specification and the
// supervisor. Passes ignore it.
func WithNames(joint, spec, supervisor string) Option {
	return func(o *options) {
		o.jointName = joint
		o.specName = spec
		o.supervisor = supervisor
	}
}
