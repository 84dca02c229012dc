package typology

// Option class registration option
type Option func(c *classOptions)

type classOptions struct {
	params   []string
	bounds   map[string]string
	newFn    func() interface{}
	abstract bool
}

// Options represents class registration options
type Options []Option

// Apply applies options
func (o Options) Apply(c *classOptions) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(c)
	}
}

// WithParams declares class formal type parameters, in order
func WithParams(params ...string) Option {
	return func(c *classOptions) {
		c.params = params
	}
}

// WithBound declares upper bound expression of a type parameter, i.e. T extends Number
func WithBound(param, expr string) Option {
	return func(c *classOptions) {
		if c.bounds == nil {
			c.bounds = map[string]string{}
		}
		c.bounds[param] = expr
	}
}

// WithNew sets no-argument constructor
func WithNew(fn func() interface{}) Option {
	return func(c *classOptions) {
		c.newFn = fn
	}
}

// WithAbstract marks class as abstract, it can only be created by registered instance factory
func WithAbstract() Option {
	return func(c *classOptions) {
		c.abstract = true
	}
}
