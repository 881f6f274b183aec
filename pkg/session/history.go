package session

import (
	"github.com/stepflowhq/stepflow/pkg/models"
)

// MaxHistory bounds the retained snapshots; the oldest entry is dropped on
// overflow.
const MaxHistory = 50

// unsavedCursor marks a saved state that has been dropped from the bounded
// history; the session stays dirty until the next successful save.
const unsavedCursor = -1

// history is the snapshot stack plus a read cursor and the cursor of the
// last successfully saved snapshot.
type history struct {
	snapshots   []*models.WorkflowData
	cursor      int
	savedCursor int
}

func newHistory(initial *models.WorkflowData) history {
	return history{
		snapshots:   []*models.WorkflowData{initial},
		cursor:      0,
		savedCursor: 0,
	}
}

func (h *history) current() *models.WorkflowData {
	return h.snapshots[h.cursor]
}

// push truncates any future snapshots beyond the cursor (a new edit opens a
// fresh branch; the old future is unreachable), appends the snapshot, and
// enforces the retention cap.
func (h *history) push(snapshot *models.WorkflowData) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot)
	h.cursor = len(h.snapshots) - 1

	if h.savedCursor > h.cursor {
		h.savedCursor = unsavedCursor
	}

	if len(h.snapshots) > MaxHistory {
		drop := len(h.snapshots) - MaxHistory
		h.snapshots = h.snapshots[drop:]
		h.cursor -= drop

		if h.savedCursor != unsavedCursor {
			h.savedCursor -= drop
			if h.savedCursor < 0 {
				h.savedCursor = unsavedCursor
			}
		}
	}
}

// replaceCurrent swaps the snapshot under the cursor without recording a
// history entry. Used for save reconciliation, which is not a user edit.
func (h *history) replaceCurrent(snapshot *models.WorkflowData) {
	h.snapshots[h.cursor] = snapshot
}

func (h *history) canUndo() bool {
	return h.cursor > 0
}

func (h *history) canRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

func (h *history) undo() bool {
	if !h.canUndo() {
		return false
	}

	h.cursor--

	return true
}

func (h *history) redo() bool {
	if !h.canRedo() {
		return false
	}

	h.cursor++

	return true
}

func (h *history) dirty() bool {
	return h.cursor != h.savedCursor
}

func (h *history) markSaved() {
	h.savedCursor = h.cursor
}

func (h *history) length() int {
	return len(h.snapshots)
}
