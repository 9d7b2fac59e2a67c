// Package classify turns raw feed entries into dataset candidates. Status
// and category come from ordered keyword tables matched against the
// entry's title and summary, the company from the feed name or the link
// host, and the product name from the title's leading fragment.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/errors"
	"github.com/agentstation/radar/pkg/feeds"
)

var (
	// announceish catches announcement stems when no status rule fires.
	announceish = regexp.MustCompile(`(?i)\b(announce|introduc|unveil)\b`)

	// productSplit cuts a title at the first colon, dash, or spaced
	// em-dash, leaving the leading product fragment.
	productSplit = regexp.MustCompile(`[:–-]| — `)
)

// Classifier builds candidates from feed entries.
type Classifier interface {
	// Classify normalizes one feed entry into a candidate. Entries
	// without a title or a link are rejected.
	Classify(feedName string, item feeds.Item) (dataset.Candidate, error)
}

// classifier is the default implementation of Classifier.
type classifier struct {
	status    []statusMatcher
	category  []categoryMatcher
	companies map[string]string
	asOf      utc.Time
}

// New creates a new Classifier with options.
func New(opts ...Option) (Classifier, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	status, category, err := compileRules(options.rules)
	if err != nil {
		return nil, err
	}

	return &classifier{
		status:    status,
		category:  category,
		companies: options.rules.Companies,
		asOf:      options.asOf,
	}, nil
}

// Classify normalizes one feed entry. The evidence date comes from the
// entry's published or updated timestamp; entries without one fall back
// to the classifier's as-of date so identity stays derivable.
func (c *classifier) Classify(feedName string, item feeds.Item) (dataset.Candidate, error) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" {
		return dataset.Candidate{}, errors.NewValidationError("title", title, "entry has no title")
	}
	if link == "" {
		return dataset.Candidate{}, errors.NewValidationError("link", link, "entry has no link")
	}

	summary := strings.TrimSpace(item.Summary)
	text := title + "\n" + summary
	if summary == "" {
		summary = title
	}

	evidence := item.Date()
	if evidence.IsZero() {
		evidence = c.now()
	}

	return dataset.Candidate{
		Company:        c.companyFor(feedName, link),
		Product:        productFromTitle(title),
		Category:       c.classifyCategory(text),
		Status:         c.classifyStatus(text),
		Evidence:       evidence,
		Summary:        summary,
		SourceTitle:    title,
		SourceURL:      link,
		SourceType:     constants.DefaultSourceType,
		SourcePriority: constants.DefaultSourcePriority,
		Confidence:     constants.DefaultConfidence,
		Regions:        constants.DefaultRegions,
	}, nil
}

// classifyStatus walks the status table in order. Unmatched text defaults
// to Announced when it still reads like an announcement, else Upgraded.
func (c *classifier) classifyStatus(text string) dataset.Status {
	for _, rule := range c.status {
		if rule.re.MatchString(text) {
			return rule.status
		}
	}
	if announceish.MatchString(text) {
		return dataset.StatusAnnounced
	}
	return dataset.StatusUpgraded
}

// classifyCategory walks the category table in order, defaulting to
// Model/API.
func (c *classifier) classifyCategory(text string) string {
	for _, rule := range c.category {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return "Model/API"
}

// companyFor resolves the publishing company: an explicit feed-name prefix
// wins, then the link's host through the company table, then the bare
// host.
func (c *classifier) companyFor(feedName, link string) string {
	if name, _, found := strings.Cut(feedName, ":"); found {
		return name
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if company, ok := c.companies[u.Host]; ok {
		return company
	}
	return u.Host
}

// now returns the pinned as-of date when set, otherwise today.
func (c *classifier) now() utc.Time {
	if !c.asOf.IsZero() {
		return c.asOf
	}
	return dataset.Today()
}

// productFromTitle guesses the product name from the title fragment before
// the first separator, capped at the product length limit.
func productFromTitle(title string) string {
	fragment := productSplit.Split(title, 2)[0]
	runes := []rune(fragment)
	if len(runes) > constants.MaxProductRunes {
		fragment = string(runes[:constants.MaxProductRunes])
	}
	return strings.TrimSpace(fragment)
}
