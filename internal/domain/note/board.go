package note

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Nikkune/MediLabo/internal/domain/risk"
	"github.com/Nikkune/MediLabo/internal/platform/notify"
)

// ErrBusy is returned when a mutating operation is attempted while a request
// is still outstanding.
var ErrBusy = errors.New("operation in progress")

// ErrBlankContent guards note writes with empty text; the screen disables the
// save control rather than letting this reach the service.
var ErrBlankContent = errors.New("note content is required")

// Board is the notes-screen engine for one patient: the note history, the
// paired risk level, and create/update/delete flows that each conclude with a
// full re-fetch. Like the patient grid it runs on a single goroutine and is
// not safe for concurrent use.
type Board struct {
	notes    *Client
	risks    *risk.Client
	notifier notify.Notifier
	logger   zerolog.Logger

	firstName string
	lastName  string
	list      []Note
	level     risk.Level
	busy      bool
}

func NewBoard(notes *Client, risks *risk.Client, notifier notify.Notifier, logger zerolog.Logger, firstName, lastName string) *Board {
	return &Board{
		notes:     notes,
		risks:     risks,
		notifier:  notifier,
		logger:    logger,
		firstName: firstName,
		lastName:  lastName,
		level:     risk.LevelNone,
	}
}

// Notes returns the current note history, newest state as of the last fetch.
func (b *Board) Notes() []Note {
	return b.list
}

// Risk returns the level paired with the current note history.
func (b *Board) Risk() risk.Level {
	return b.level
}

// Busy reports whether a request is outstanding.
func (b *Board) Busy() bool {
	return b.busy
}

// Fetch loads the note list and the risk level as a pair. A failed note fetch
// empties the list; a failed risk fetch resets the level to None. Both are
// reported, neither is fatal.
func (b *Board) Fetch(ctx context.Context) error {
	if b.busy {
		return ErrBusy
	}
	b.busy = true
	defer func() { b.busy = false }()
	return b.fetch(ctx)
}

func (b *Board) fetch(ctx context.Context) error {
	res := b.notes.List(ctx, b.firstName, b.lastName)
	if failure, failed := res.Failure(); failed {
		b.notifier.Error(failure.Message)
		b.list = nil
		return failure
	}
	b.list = res.Value()

	levelRes := b.risks.Get(ctx, b.firstName, b.lastName)
	if failure, failed := levelRes.Failure(); failed {
		b.notifier.Error(failure.Message)
		b.level = risk.LevelNone
		return failure
	}
	b.level = levelRes.Value()
	b.logger.Debug().Int("notes", len(b.list)).Str("risk", string(b.level)).Msg("notes fetched")
	return nil
}

// Create adds a note and re-fetches the list+risk pair.
func (b *Board) Create(ctx context.Context, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrBlankContent
	}
	if b.busy {
		return ErrBusy
	}
	b.busy = true
	defer func() { b.busy = false }()

	res := b.notes.Create(ctx, b.firstName, b.lastName, content)
	if failure, failed := res.Failure(); failed {
		b.notifier.Error(failure.Message)
		return failure
	}
	b.notifier.Success("Note created")
	return b.fetch(ctx)
}

// Update rewrites a note's text and re-fetches the list+risk pair.
func (b *Board) Update(ctx context.Context, id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrBlankContent
	}
	if b.busy {
		return ErrBusy
	}
	b.busy = true
	defer func() { b.busy = false }()

	res := b.notes.Update(ctx, id, content)
	if failure, failed := res.Failure(); failed {
		b.notifier.Error(failure.Message)
		return failure
	}
	b.notifier.Success("Note updated")
	return b.fetch(ctx)
}

// Delete removes a note after confirmation and re-fetches the pair.
func (b *Board) Delete(ctx context.Context, id string, confirm func(prompt string) bool) error {
	if b.busy {
		return ErrBusy
	}
	if confirm != nil && !confirm("Delete this note? This action cannot be undone.") {
		return nil
	}
	b.busy = true
	defer func() { b.busy = false }()

	res := b.notes.Delete(ctx, id)
	if failure, failed := res.Failure(); failed {
		b.notifier.Error(failure.Message)
		return failure
	}
	b.notifier.Success("Note deleted")
	return b.fetch(ctx)
}
