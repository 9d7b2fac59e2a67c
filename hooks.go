package radar

import (
	"sync"

	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/reconciler"
)

// Hook function types for row events.
type (
	// RowAddedHook is called when a scan creates a row.
	RowAddedHook func(row dataset.Row)

	// RowPromotedHook is called when a scan advances a row's status.
	RowPromotedHook func(old, new dataset.Row)
)

// hooks manages event callbacks for table changes.
type hooks struct {
	mu            sync.RWMutex
	onRowAdded    []RowAddedHook
	onRowPromoted []RowPromotedHook
}

// newHooks creates a new hooks instance.
func newHooks() *hooks {
	return &hooks{}
}

// OnRowAdded registers a callback for rows created by a scan.
func (h *hooks) OnRowAdded(fn RowAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRowAdded = append(h.onRowAdded, fn)
}

// OnRowPromoted registers a callback for rows whose status a scan advanced.
func (h *hooks) OnRowPromoted(fn RowPromotedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRowPromoted = append(h.onRowPromoted, fn)
}

// any reports whether any callback is registered.
func (h *hooks) any() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.onRowAdded) > 0 || len(h.onRowPromoted) > 0
}

// trigger fires callbacks from a run's change set. The before map holds
// the pre-merge rows by ID. A row created and promoted within the same
// run fires only the added hook, in its final state.
func (h *hooks) trigger(before map[string]dataset.Row, result *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	promoted := make(map[string]*dataset.Row, len(result.Promoted))
	for _, row := range result.Promoted {
		promoted[row.ID] = row
	}

	for _, row := range result.Created {
		final := row
		if p, ok := promoted[row.ID]; ok {
			final = p
		}
		for _, hook := range h.onRowAdded {
			hook(*final)
		}
	}

	for _, row := range result.Promoted {
		old, ok := before[row.ID]
		if !ok {
			// Created this run; the added hook covered it.
			continue
		}
		for _, hook := range h.onRowPromoted {
			hook(old, *row)
		}
	}
}

// snapshotRows copies the table's rows by ID for later hook comparison.
func snapshotRows(rows *dataset.Rows) map[string]dataset.Row {
	before := make(map[string]dataset.Row, rows.Len())
	rows.ForEach(func(id string, row *dataset.Row) bool {
		before[id] = *row
		return true
	})
	return before
}
