package listener

// Options describe one logical subscription.
type Options struct {
	// Delegate is a selector matched against nodes between the event target and the owning element.
	// Empty means the listener is managed: it fires only for events reaching the owning element itself.
	Delegate string
	// Once removes the listener right before its first invocation.
	Once bool
}

// Option configures a subscription.
type Option func(*Options)

func Delegate(selector string) Option {
	return func(o *Options) {
		o.Delegate = selector
	}
}

func Once() Option {
	return func(o *Options) {
		o.Once = true
	}
}

// WithOptions replaces every field with those of 'opts'.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o Options) style() style {
	if o.Delegate != "" {
		return styleDelegated
	}
	return styleManaged
}

type registryConfig struct {
	instrumentation Instrumentation
	errorHandler    func(eventType string, err error)
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// WithInstrumentation reports registry activity to 'i'.
func WithInstrumentation(i Instrumentation) RegistryOption {
	return func(c *registryConfig) {
		if i != nil {
			c.instrumentation = i
		}
	}
}

// WithErrorHandler is called with every panic recovered from a listener callback.
func WithErrorHandler(fn func(eventType string, err error)) RegistryOption {
	return func(c *registryConfig) {
		c.errorHandler = fn
	}
}
