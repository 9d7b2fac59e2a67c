package classify

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/errors"
)

// options configures a classifier.
type options struct {
	rules Rules
	asOf  utc.Time
}

func defaultOptions() *options {
	return &options{
		rules: DefaultRules(),
	}
}

// Option is a function that configures a Classifier.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns classifier options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithRules replaces the built-in classification tables.
func WithRules(rules Rules) Option {
	return func(o *options) error {
		if len(rules.Status) == 0 {
			return &errors.ValidationError{
				Field:   "rules.status",
				Message: "cannot be empty",
			}
		}
		o.rules = rules
		return nil
	}
}

// WithAsOf pins the fallback evidence date used for entries whose feed
// carries no usable timestamp. Unset, the classifier uses today.
func WithAsOf(asOf utc.Time) Option {
	return func(o *options) error {
		o.asOf = asOf
		return nil
	}
}
