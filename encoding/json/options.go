package json

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

func WithMode(mode Mode) Option {
	return optionFn(func(o *Options) {
		o.Mode = mode
	})
}

func WithDuplicateKeyPolicy(policy DuplicateKeyPolicy) Option {
	return optionFn(func(o *Options) {
		o.DuplicateKeyPolicy = policy
		o.setDuplicateKeyPolicy = true
	})
}

// WithMalformedPolicy controls whether trailing commas are accepted
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return optionFn(func(o *Options) {
		o.MalformedPolicy = policy
		o.setMalformedPolicy = true
	})
}

// WithMaxDepth limits container nesting, zero or negative disables the limit
func WithMaxDepth(depth int) Option {
	return optionFn(func(o *Options) { o.MaxDepth = depth })
}

func defaultOptions() Options {
	return Options{
		Mode:               ModeCompat,
		DuplicateKeyPolicy: LastWins,
		MalformedPolicy:    Tolerant,
		MaxDepth:           DefaultMaxDepth,
	}
}

func resolveOptions(opts []Option) Options {
	result := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	if result.Mode == ModeStrict {
		if !result.setDuplicateKeyPolicy {
			result.DuplicateKeyPolicy = ErrorOnDuplicate
		}
		if !result.setMalformedPolicy {
			result.MalformedPolicy = FailFast
		}
	}
	if result.MaxDepth < 0 {
		result.MaxDepth = 0
	}
	return result
}
