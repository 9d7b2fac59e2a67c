package dataset

import (
	"fmt"
	"sort"
	"sync"
)

// Rows is a concurrent safe collection of table rows with two secondary
// indexes: identity slug to row, and provenance URL to identity slug.
// Both indexes are rebuilt from the row set on load and never persisted.
type Rows struct {
	mu    sync.RWMutex
	rows  map[string]*Row   // by identity slug
	byURL map[string]string // source URL -> identity slug
}

// RowsOption defines a function that configures a Rows instance.
type RowsOption func(*Rows)

// WithRowsCapacity sets the initial capacity of the row map.
func WithRowsCapacity(capacity int) RowsOption {
	return func(r *Rows) {
		r.rows = make(map[string]*Row, capacity)
		r.byURL = make(map[string]string, capacity)
	}
}

// NewRows creates a new Rows collection with optional configuration.
func NewRows(opts ...RowsOption) *Rows {
	r := &Rows{
		rows:  make(map[string]*Row),
		byURL: make(map[string]string),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Get returns a row by identity slug and whether it exists.
func (r *Rows) Get(id string) (*Row, bool) {
	r.mu.RLock()
	row, ok := r.rows[id]
	r.mu.RUnlock()
	return row, ok
}

// GetByURL returns a row by provenance URL and whether it exists.
func (r *Rows) GetByURL(url string) (*Row, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byURL[url]
	if !ok {
		return nil, false
	}
	row, ok := r.rows[id]
	return row, ok
}

// Set inserts or replaces a row, keeping both indexes consistent.
// Returns an error if the row is nil or has no ID.
func (r *Rows) Set(row *Row) error {
	if row == nil {
		return fmt.Errorf("row cannot be nil")
	}
	if row.ID == "" {
		return fmt.Errorf("row ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// A replaced row may have carried a different URL.
	if prev, exists := r.rows[row.ID]; exists && prev.SourceURL != row.SourceURL {
		delete(r.byURL, prev.SourceURL)
	}

	r.rows[row.ID] = row
	if row.SourceURL != "" {
		r.byURL[row.SourceURL] = row.ID
	}
	return nil
}

// Delete removes a row by identity slug. Returns an error if the row
// doesn't exist.
func (r *Rows) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, exists := r.rows[id]
	if !exists {
		return fmt.Errorf("row with ID %s not found", id)
	}

	delete(r.rows, id)
	if row.SourceURL != "" {
		delete(r.byURL, row.SourceURL)
	}
	return nil
}

// Exists checks if a row exists without returning it.
func (r *Rows) Exists(id string) bool {
	r.mu.RLock()
	_, exists := r.rows[id]
	r.mu.RUnlock()
	return exists
}

// Len returns the number of rows.
func (r *Rows) Len() int {
	r.mu.RLock()
	length := len(r.rows)
	r.mu.RUnlock()
	return length
}

// List returns all rows in serialization order: company ascending, then
// status date descending (newest first), then identity slug ascending.
// The order is total, so equal datasets always serialize identically.
func (r *Rows) List() []*Row {
	r.mu.RLock()
	rows := make([]*Row, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Company != rows[j].Company {
			return rows[i].Company < rows[j].Company
		}
		if !rows[i].StatusDate.Equal(rows[j].StatusDate) {
			return rows[i].StatusDate.After(rows[j].StatusDate)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// Clone returns a deep copy of the collection. Rows in the copy are
// independent of the originals, so callers can hand out a snapshot
// without exposing the live table.
func (r *Rows) Clone() *Rows {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := NewRows(WithRowsCapacity(len(r.rows)))
	for id, row := range r.rows {
		clone.rows[id] = row.Clone()
	}
	for url, id := range r.byURL {
		clone.byURL[url] = id
	}
	return clone
}

// ForEach applies a function to each row in unspecified order. The
// function should not modify the row. If it returns false, iteration
// stops early.
func (r *Rows) ForEach(fn func(id string, row *Row) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, row := range r.rows {
		if !fn(id, row) {
			break
		}
	}
}

// Clear removes all rows and index entries.
func (r *Rows) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k := range r.rows {
		delete(r.rows, k)
	}
	for k := range r.byURL {
		delete(r.byURL, k)
	}
}
