package dataset

import (
	"github.com/agentstation/radar/pkg/errors"
)

// Status represents a product's lifecycle status.
type Status string

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// Lifecycle statuses. The first four form the forward track in promotion
// order; Deprecated and Delayed sit outside it.
const (
	StatusAnnounced  Status = "Announced"  // Publicly announced, not yet usable
	StatusPreview    Status = "Preview"    // Limited or early access
	StatusUpgraded   Status = "Upgraded"   // Meaningful capability change post-release
	StatusShipped    Status = "Shipped"    // Generally available
	StatusDeprecated Status = "Deprecated" // Being retired
	StatusDelayed    Status = "Delayed"    // Publicly postponed
)

// forwardRank orders the forward track. Side statuses have no rank here.
var forwardRank = map[Status]int{
	StatusAnnounced: 1,
	StatusPreview:   2,
	StatusUpgraded:  3,
	StatusShipped:   4,
}

// Statuses returns all valid statuses.
func Statuses() []Status {
	return []Status{
		StatusAnnounced,
		StatusPreview,
		StatusUpgraded,
		StatusShipped,
		StatusDeprecated,
		StatusDelayed,
	}
}

// IsValid reports whether s is a member of the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusAnnounced, StatusPreview, StatusUpgraded, StatusShipped,
		StatusDeprecated, StatusDelayed:
		return true
	}
	return false
}

// Side reports whether s is a side status (Deprecated or Delayed) rather
// than a member of the forward track.
func (s Status) Side() bool {
	return s == StatusDeprecated || s == StatusDelayed
}

// ParseStatus parses a string into a Status. The zero Status and an error
// are returned for strings outside the closed set.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errors.NewValidationError("status", s, "not a recognized status")
	}
	return status, nil
}

// Promotes reports whether an observed status is news relative to the
// current one. The rules, in order:
//
//  1. An equal status never promotes; date-only changes are reobservations.
//  2. An observed side status always promotes; an explicit delay or
//     deprecation supersedes whatever the forward track said.
//  3. While a side status is current, only Shipped promotes forward.
//     Re-announcing a delayed product is routine coverage, shipping is not.
//  4. On the forward track, promotion strictly follows
//     Announced < Preview < Upgraded < Shipped.
func Promotes(current, observed Status) bool {
	if observed == current {
		return false
	}
	if observed.Side() {
		return true
	}
	if current.Side() {
		return observed == StatusShipped
	}
	return forwardRank[observed] > forwardRank[current]
}

// ChangeType classifies how a row last changed.
type ChangeType string

// String returns the string representation of a ChangeType.
func (c ChangeType) String() string {
	return string(c)
}

// Change types recorded on rows.
const (
	ChangeTypeNew    ChangeType = "New"    // Row created this run
	ChangeTypeLaunch ChangeType = "Launch" // Promoted to Shipped
	ChangeTypeUpdate ChangeType = "Update" // Any other promotion
)

// ChangeTypeFor returns the change type recorded for a promotion to the
// given status.
func ChangeTypeFor(observed Status) ChangeType {
	if observed == StatusShipped {
		return ChangeTypeLaunch
	}
	return ChangeTypeUpdate
}
