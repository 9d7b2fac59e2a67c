package feeds

import (
	"github.com/agentstation/utc"
)

// Item is a single normalized feed entry. Summary holds the raw entry
// body, which may contain HTML markup.
type Item struct {
	Title     string
	Link      string
	Summary   string
	Published utc.Time
	Updated   utc.Time
}

// Date returns the evidence date for the item: the published timestamp
// when present, otherwise the updated timestamp. The zero value means the
// feed carried no parseable date.
func (it Item) Date() utc.Time {
	if !it.Published.IsZero() {
		return it.Published
	}
	return it.Updated
}
