package dataset

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/radar/pkg/constants"
	"github.com/agentstation/radar/pkg/errors"
)

// header is the fixed table schema. Column order is part of the on-disk
// format; changing it is a breaking change for every existing dataset.
var header = []string{
	"id",
	"company",
	"product",
	"category",
	"status",
	"status_date",
	"first_seen",
	"last_seen",
	"change_type",
	"version",
	"summary",
	"source_title",
	"source_url",
	"source_type",
	"source_priority",
	"confidence",
	"tags",
	"regions",
	"notes",
}

// Header returns the table column names in on-disk order.
func Header() []string {
	h := make([]string, len(header))
	copy(h, header)
	return h
}

// record serializes the row into one CSV record in header order.
func (r *Row) record() []string {
	return []string{
		r.ID,
		r.Company,
		r.Product,
		r.Category,
		string(r.Status),
		FormatDate(r.StatusDate),
		FormatDate(r.FirstSeen),
		FormatDate(r.LastSeen),
		string(r.ChangeType),
		r.Version,
		r.Summary,
		r.SourceTitle,
		r.SourceURL,
		r.SourceType,
		r.SourcePriority,
		r.Confidence,
		r.Tags,
		r.Regions,
		r.Notes,
	}
}

// parseRecord deserializes one CSV record into a Row. The record must
// have exactly one field per header column.
func parseRecord(record []string) (*Row, error) {
	if len(record) != len(header) {
		return nil, fmt.Errorf("record has %d fields, want %d", len(record), len(header))
	}

	status, err := ParseStatus(record[4])
	if err != nil {
		return nil, err
	}

	statusDate, err := ParseDate(record[5])
	if err != nil {
		return nil, fmt.Errorf("status_date: %w", err)
	}
	firstSeen, err := ParseDate(record[6])
	if err != nil {
		return nil, fmt.Errorf("first_seen: %w", err)
	}
	lastSeen, err := ParseDate(record[7])
	if err != nil {
		return nil, fmt.Errorf("last_seen: %w", err)
	}

	row := &Row{
		ID:             record[0],
		Company:        record[1],
		Product:        record[2],
		Category:       record[3],
		Status:         status,
		StatusDate:     statusDate,
		FirstSeen:      firstSeen,
		LastSeen:       lastSeen,
		ChangeType:     ChangeType(record[8]),
		Version:        record[9],
		Summary:        record[10],
		SourceTitle:    record[11],
		SourceURL:      record[12],
		SourceType:     record[13],
		SourcePriority: record[14],
		Confidence:     record[15],
		Tags:           record[16],
		Regions:        record[17],
		Notes:          record[18],
	}

	if row.ID == "" {
		return nil, errors.NewValidationError("id", "", "row ID cannot be empty")
	}
	return row, nil
}

// FormatDate renders a timestamp as a calendar date. The zero time
// renders as an empty string.
func FormatDate(t utc.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.DateFormat)
}

// ParseDate parses a calendar date string into a midnight UTC timestamp.
func ParseDate(s string) (utc.Time, error) {
	if s == "" {
		return utc.Time{}, fmt.Errorf("date cannot be empty")
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return utc.Time{}, err
	}
	return utc.Time{Time: t}, nil
}

// DateOf truncates a timestamp to its calendar date at midnight UTC.
func DateOf(t time.Time) utc.Time {
	u := t.UTC()
	return utc.Time{Time: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date at midnight UTC.
func Today() utc.Time {
	return DateOf(time.Now())
}
