package reconciler

import (
	"github.com/agentstation/radar/pkg/errors"
)

// options configures a reconciler.
type options struct {
	identify IdentityFunc
}

func defaultOptions() *options {
	return &options{
		identify: Identity,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithIdentityFunc sets the identity function used to resolve candidates
// to row slugs. Identity is the default.
func WithIdentityFunc(fn IdentityFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return &errors.ValidationError{
				Field:   "identity",
				Message: "cannot be nil",
			}
		}
		o.identify = fn
		return nil
	}
}
