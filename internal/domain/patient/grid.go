package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Nikkune/MediLabo/internal/platform/api"
	"github.com/Nikkune/MediLabo/internal/platform/notify"
)

// ErrBusy is returned when a mutating operation is attempted while a request
// is still outstanding. The engine runs on a single goroutine; the guard
// replaces the disabled controls of the original screen, it is not a lock.
var ErrBusy = errors.New("operation in progress")

// ErrUnknownRow is returned for operations on a row id the store does not
// hold.
var ErrUnknownRow = errors.New("unknown row")

// Confirmer answers a destructive-action prompt. A nil Confirmer approves
// everything.
type Confirmer func(prompt string) bool

// Grid is the inline-editable patient screen engine: the ordered row store,
// the per-row edit-mode table, local drafts, and the commit protocol against
// the record service. It is not safe for concurrent use; all mutation happens
// on the caller's goroutine in response to user actions and resolved
// requests.
type Grid struct {
	client   *Client
	notifier notify.Notifier
	logger   zerolog.Logger

	rows   []Row
	modes  ModeModel
	drafts map[uuid.UUID]*Row
	busy   bool
}

func NewGrid(client *Client, notifier notify.Notifier, logger zerolog.Logger) *Grid {
	return &Grid{
		client:   client,
		notifier: notifier,
		logger:   logger,
		modes:    ModeModel{},
		drafts:   map[uuid.UUID]*Row{},
	}
}

// Rows returns the store in server order (new rows first). The slice is the
// store itself; callers must not mutate it.
func (g *Grid) Rows() []Row {
	return g.rows
}

// Row looks a row up by its local id.
func (g *Grid) Row(id uuid.UUID) (Row, bool) {
	for _, row := range g.rows {
		if row.ID == id {
			return row, true
		}
	}
	return Row{}, false
}

// Modes exposes the edit-mode table.
func (g *Grid) Modes() ModeModel {
	return g.modes
}

// Busy reports whether a request is outstanding. Rendering layers disable
// mutating controls while it is set.
func (g *Grid) Busy() bool {
	return g.busy
}

// Fetch replaces the store wholesale with the server's collection, in server
// order. On failure the error is reported and the store is reset to empty.
// Pending edit state is dropped either way: the rows it referred to are gone.
func (g *Grid) Fetch(ctx context.Context) error {
	if g.busy {
		return ErrBusy
	}
	g.busy = true
	defer func() { g.busy = false }()

	g.modes = ModeModel{}
	g.drafts = map[uuid.UUID]*Row{}

	res := g.client.All(ctx)
	if failure, failed := res.Failure(); failed {
		g.notifier.Error(failure.Message)
		g.rows = nil
		return failure
	}

	fetched := res.Value()
	rows := make([]Row, 0, len(fetched))
	for _, p := range fetched {
		rows = append(rows, rowFromPatient(p))
	}
	g.rows = rows
	g.logger.Debug().Int("count", len(rows)).Msg("patients fetched")
	return nil
}

// AddRow inserts a blank unsaved row at the front of the store and puts it
// straight into edit mode with focus on the last name field.
func (g *Grid) AddRow() (uuid.UUID, error) {
	if g.busy {
		return uuid.Nil, ErrBusy
	}
	row := Row{ID: uuid.New(), Gender: GenderMale, IsNew: true}
	g.rows = append([]Row{row}, g.rows...)
	g.modes.Set(row.ID, ModeEntry{Mode: ModeEdit, FieldToFocus: "lastName"})
	return row.ID, nil
}

// Edit switches an existing row into edit mode.
func (g *Grid) Edit(id uuid.UUID) error {
	if g.busy {
		return ErrBusy
	}
	if _, ok := g.Row(id); !ok {
		return ErrUnknownRow
	}
	g.modes.Set(id, ModeEntry{Mode: ModeEdit})
	return nil
}

// Draft returns the mutable working copy for a row in edit mode. Edits land
// on the draft only; the store is untouched until a successful Save.
func (g *Grid) Draft(id uuid.UUID) (*Row, error) {
	if g.modes.Get(id).Mode != ModeEdit {
		return nil, fmt.Errorf("row %s is not in edit mode", id)
	}
	if draft, ok := g.drafts[id]; ok {
		return draft, nil
	}
	row, ok := g.Row(id)
	if !ok {
		return nil, ErrUnknownRow
	}
	draft := row
	g.drafts[id] = &draft
	return &draft, nil
}

// StopEdit dispatches a row-level "stop editing" event. Focus loss alone is
// suppressed: it is not a commit signal.
func (g *Grid) StopEdit(ctx context.Context, id uuid.UUID, reason EditStopReason) error {
	switch reason {
	case EditStopSave:
		return g.Save(ctx, id)
	case EditStopCancel:
		return g.Cancel(id)
	default:
		return nil
	}
}

// Save commits the row's draft: create for unsaved rows, update otherwise.
// The mode entry flips to view immediately; on failure it flips back to edit,
// the store is left untouched and the failure is returned so the caller
// rejects the pending update.
func (g *Grid) Save(ctx context.Context, id uuid.UUID) error {
	if g.busy {
		return ErrBusy
	}
	index := -1
	for i, row := range g.rows {
		if row.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrUnknownRow
	}

	committed := g.rows[index]
	if draft, ok := g.drafts[id]; ok {
		committed = *draft
	}
	isCreate := g.rows[index].IsNew
	g.modes.Set(id, ModeEntry{Mode: ModeView})

	g.busy = true
	defer func() { g.busy = false }()

	res := g.commit(ctx, committed.payload(), isCreate)
	if failure, failed := res.Failure(); failed {
		g.notifier.Error(failure.Message)
		g.modes.Set(id, ModeEntry{Mode: ModeEdit})
		return failure
	}

	saved := rowFromPatient(res.Value())
	saved.ID = id
	saved.IsNew = false
	g.rows[index] = saved
	delete(g.drafts, id)
	g.modes.Delete(id)

	if isCreate {
		g.notifier.Success("Patient created successfully")
	} else {
		g.notifier.Success("Patient updated successfully")
	}
	g.logger.Info().
		Str("firstName", saved.FirstName).
		Str("lastName", saved.LastName).
		Bool("create", isCreate).
		Msg("patient saved")
	return nil
}

func (g *Grid) commit(ctx context.Context, p Payload, isCreate bool) api.Result[Patient] {
	if isCreate {
		return g.client.Create(ctx, p)
	}
	return g.client.Update(ctx, p)
}

// Cancel discards a row's pending edits. An unsaved new row is removed from
// the store entirely; an existing row keeps its pre-edit store value.
func (g *Grid) Cancel(id uuid.UUID) error {
	if g.busy {
		return ErrBusy
	}
	row, ok := g.Row(id)
	if !ok {
		return ErrUnknownRow
	}
	delete(g.drafts, id)
	if row.IsNew {
		g.modes.Delete(id)
		kept := make([]Row, 0, len(g.rows)-1)
		for _, r := range g.rows {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		g.rows = kept
		return nil
	}
	g.modes.Set(id, ModeEntry{Mode: ModeView, IgnoreModifications: true})
	return nil
}

// Delete asks for confirmation, removes the patient by natural key, then
// re-fetches the whole collection so local state matches the server.
func (g *Grid) Delete(ctx context.Context, firstName, lastName string, confirm Confirmer) error {
	if g.busy {
		return ErrBusy
	}
	prompt := fmt.Sprintf("Delete patient %s %s? This action cannot be undone.", firstName, lastName)
	if confirm != nil && !confirm(prompt) {
		return nil
	}

	g.busy = true
	res := g.client.Delete(ctx, firstName, lastName)
	g.busy = false

	if failure, failed := res.Failure(); failed {
		g.notifier.Error(failure.Message)
		return failure
	}
	g.notifier.Success("Patient deleted successfully")
	return g.Fetch(ctx)
}
