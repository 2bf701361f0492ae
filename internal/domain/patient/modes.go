package patient

import "github.com/google/uuid"

// Mode is the per-row presentation state. The zero value is view.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
)

// ModeEntry is the ephemeral edit-mode state for one row: never persisted,
// never sent to the server. FieldToFocus names the field that should receive
// input focus when the row enters edit mode. IgnoreModifications marks a
// cancel transition so pending edits are discarded instead of committed.
type ModeEntry struct {
	Mode                Mode
	FieldToFocus        string
	IgnoreModifications bool
}

// ModeModel is the keyed state table driving the row edit-mode machine:
// row id -> entry. Rows without an entry are in view mode.
type ModeModel map[uuid.UUID]ModeEntry

func (m ModeModel) Get(id uuid.UUID) ModeEntry {
	return m[id]
}

func (m ModeModel) Set(id uuid.UUID, entry ModeEntry) {
	m[id] = entry
}

func (m ModeModel) Delete(id uuid.UUID) {
	delete(m, id)
}

// EditStopReason classifies the event that asked a row to leave edit mode.
type EditStopReason int

const (
	// EditStopSave is an explicit save action.
	EditStopSave EditStopReason = iota
	// EditStopCancel is an explicit cancel action.
	EditStopCancel
	// EditStopFocusOut is the row merely losing focus. It is not a commit
	// signal and must not trigger any transition.
	EditStopFocusOut
)
