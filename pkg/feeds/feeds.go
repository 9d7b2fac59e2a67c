// Package feeds defines the vendor feed registry and retrieves feed entries.
//
// A Registry is an ordered list of feeds to poll. The built-in registry
// covers the official blogs and newsrooms of the major AI vendors; an
// operator can replace it with a YAML file. Entries come back as normalized
// Items regardless of whether the source publishes RSS 2.0 or Atom.
package feeds

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/radar/pkg/errors"
)

// Feed identifies a single vendor feed to poll. The name carries an
// optional company prefix before the first colon, e.g. "OpenAI:News".
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Registry is an ordered list of feeds. Order is preserved so scans walk
// sources deterministically from run to run.
type Registry []Feed

// DefaultFeeds returns the built-in registry of official vendor feeds.
func DefaultFeeds() Registry {
	return Registry{
		{Name: "OpenAI:News", URL: "https://openai.com/news/rss.xml"},
		{Name: "Google:AI", URL: "https://blog.google/technology/ai/rss/"},
		{Name: "Google:DeepMind", URL: "https://blog.google/technology/google-deepmind/rss/"},
		{Name: "Google:Research", URL: "https://research.google/blog/rss/"},
		{Name: "Microsoft:AI", URL: "https://www.microsoft.com/en-us/ai/blog/feed/"},
		{Name: "NVIDIA:Blog", URL: "https://blogs.nvidia.com/feed/"},
		{Name: "NVIDIA:Newsroom", URL: "https://nvidianews.nvidia.com/rss"},
		{Name: "AWS:ML", URL: "https://aws.amazon.com/blogs/machine-learning/feed/"},
		{Name: "Apple:MLResearch", URL: "https://machinelearning.apple.com/feed.xml"},
		{Name: "HuggingFace:Blog", URL: "https://huggingface.co/blog/feed.xml"},
	}
}

// LoadFile reads a feed registry from a YAML file. The file holds a list
// of name/url pairs in poll order.
func LoadFile(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// Validate checks that every feed has a name and a URL and that no name
// repeats. Names key per-feed log output and company parsing, so they
// must be unique.
func (r Registry) Validate() error {
	seen := make(map[string]bool, len(r))
	for i, feed := range r {
		name := strings.TrimSpace(feed.Name)
		if name == "" {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("feeds[%d].name", i),
				Message: "feed name cannot be empty",
			}
		}
		if strings.TrimSpace(feed.URL) == "" {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("feeds[%d].url", i),
				Value:   name,
				Message: "feed URL cannot be empty",
			}
		}
		if seen[name] {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("feeds[%d].name", i),
				Value:   name,
				Message: "duplicate feed name",
			}
		}
		seen[name] = true
	}
	return nil
}

// Names returns the feed names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, feed := range r {
		names[i] = feed.Name
	}
	return names
}
