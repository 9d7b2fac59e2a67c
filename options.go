package radar

import (
	"path/filepath"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/classify"
	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/enhancer"
	"github.com/agentstation/radar/pkg/errors"
	"github.com/agentstation/radar/pkg/feeds"
)

// options holds the configured state of a Radar instance.
type options struct {
	dataDir   string
	tablePath string
	digestDir string

	feeds feeds.Registry
	rules classify.Rules

	clock func() utc.Time

	windowDays    int
	limit         int
	suppressFirst bool

	enhancers []enhancer.Enhancer
}

// defaultOptions returns the default options: built-in feeds and rules,
// files under the current directory, the default digest window.
func defaultOptions() *options {
	return &options{
		dataDir:    ".",
		feeds:      feeds.DefaultFeeds(),
		rules:      classify.DefaultRules(),
		clock:      dataset.Today,
		windowDays: constants.DefaultWindowDays,
	}
}

// Option is a function that configures a Radar instance.
type Option func(*options) error

// apply applies the given options.
func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// newOptions creates options with defaults and applies overrides.
func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}
	return o, nil
}

// resolvedTablePath returns the configured table path, or the default
// table filename under the data directory.
func (o *options) resolvedTablePath() string {
	if o.tablePath != "" {
		return o.tablePath
	}
	return filepath.Join(o.dataDir, constants.DefaultTableFile)
}

// resolvedDigestDir returns the configured digest directory, or the
// default directory under the data directory.
func (o *options) resolvedDigestDir() string {
	if o.digestDir != "" {
		return o.digestDir
	}
	return filepath.Join(o.dataDir, constants.DefaultDigestDir)
}

// WithDataDir sets the directory the table and digests live under.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return &errors.ValidationError{
				Field:   "data_dir",
				Message: "cannot be empty",
			}
		}
		o.dataDir = dir
		return nil
	}
}

// WithTablePath sets an explicit path for the dataset table.
func WithTablePath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "table",
				Message: "cannot be empty",
			}
		}
		o.tablePath = path
		return nil
	}
}

// WithDigestDir sets an explicit directory for daily digests.
func WithDigestDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return &errors.ValidationError{
				Field:   "digest_dir",
				Message: "cannot be empty",
			}
		}
		o.digestDir = dir
		return nil
	}
}

// WithFeeds replaces the built-in feed registry.
func WithFeeds(registry feeds.Registry) Option {
	return func(o *options) error {
		if err := registry.Validate(); err != nil {
			return err
		}
		o.feeds = registry
		return nil
	}
}

// WithRules replaces the built-in classification rules.
func WithRules(rules classify.Rules) Option {
	return func(o *options) error {
		if len(rules.Status) == 0 {
			return &errors.ValidationError{
				Field:   "rules.status",
				Message: "at least one status rule is required",
			}
		}
		o.rules = rules
		return nil
	}
}

// WithClock sets the source of the run's reference date. Scans merge
// and window against this date instead of the wall clock.
func WithClock(clock func() utc.Time) Option {
	return func(o *options) error {
		if clock == nil {
			return &errors.ValidationError{
				Field:   "clock",
				Message: "cannot be nil",
			}
		}
		o.clock = clock
		return nil
	}
}

// WithWindowDays sets the digest recency window in days. Zero disables
// the window.
func WithWindowDays(days int) Option {
	return func(o *options) error {
		if days < 0 {
			return &errors.ValidationError{
				Field:   "window_days",
				Message: "cannot be negative",
			}
		}
		o.windowDays = days
		return nil
	}
}

// WithLimit caps the number of digest entries. Zero means unbounded.
func WithLimit(limit int) Option {
	return func(o *options) error {
		if limit < 0 {
			return &errors.ValidationError{
				Field:   "limit",
				Message: "cannot be negative",
			}
		}
		o.limit = limit
		return nil
	}
}

// WithSuppressFirst suppresses the digest on the run that seeds an
// empty table.
func WithSuppressFirst(enabled bool) Option {
	return func(o *options) error {
		o.suppressFirst = enabled
		return nil
	}
}

// WithEnhancer appends a digest enhancer. Enhancers run in the order
// they are added.
func WithEnhancer(e enhancer.Enhancer) Option {
	return func(o *options) error {
		if e == nil {
			return &errors.ValidationError{
				Field:   "enhancer",
				Message: "cannot be nil",
			}
		}
		o.enhancers = append(o.enhancers, e)
		return nil
	}
}
