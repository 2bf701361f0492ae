package note

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikkune/MediLabo/internal/domain/risk"
	"github.com/Nikkune/MediLabo/internal/platform/api"
)

type recorder struct {
	successes []string
	errors    []string
}

func (r *recorder) Success(message string) { r.successes = append(r.successes, message) }
func (r *recorder) Error(message string)   { r.errors = append(r.errors, message) }

// fakeNotes serves the notes and risk endpoints for board tests.
type fakeNotes struct {
	notes    []map[string]any
	level    string
	riskFail bool
	requests []string // "METHOD path"
}

func (f *fakeNotes) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/risk":
			if f.riskFail {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"message":"risk unavailable"}`))
				return
			}
			w.Write([]byte(f.level))
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(f.notes)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"n9","note":"x","createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-01T10:00:00Z"}`))
		}
	}
}

func newTestBoard(t *testing.T, svc *fakeNotes) (*Board, *recorder) {
	t.Helper()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	ch := api.NewChannel(srv.URL, "medilabo", "medilabo123", 5*time.Second, zerolog.Nop())
	rec := &recorder{}
	board := NewBoard(NewClient(ch), risk.NewClient(ch), rec, zerolog.Nop(), "Ana", "Lee")
	return board, rec
}

func sampleNote() map[string]any {
	return map[string]any{
		"id":        "n1",
		"note":      "Patient reports dizziness",
		"createdAt": "2024-05-01T10:00:00Z",
		"updatedAt": "2024-05-02T09:30:00Z",
	}
}

func TestFetchLoadsNotesAndRiskPair(t *testing.T) {
	board, rec := newTestBoard(t, &fakeNotes{notes: []map[string]any{sampleNote()}, level: "Borderline"})

	require.NoError(t, board.Fetch(context.Background()))

	require.Len(t, board.Notes(), 1)
	n := board.Notes()[0]
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, "Patient reports dizziness", n.Note)
	assert.Equal(t, 2024, n.CreatedAt.Year())
	assert.True(t, n.UpdatedAt.After(n.CreatedAt.Time))
	assert.Equal(t, risk.LevelBorderline, board.Risk())
	assert.Empty(t, rec.errors)
}

func TestFetchRiskFailureResetsLevel(t *testing.T) {
	svc := &fakeNotes{notes: []map[string]any{sampleNote()}, level: "In Danger"}
	board, rec := newTestBoard(t, svc)
	require.NoError(t, board.Fetch(context.Background()))
	require.Equal(t, risk.LevelInDanger, board.Risk())

	svc.riskFail = true
	err := board.Fetch(context.Background())
	require.Error(t, err)

	assert.Equal(t, risk.LevelNone, board.Risk())
	assert.Len(t, board.Notes(), 1, "note list still holds the fetched history")
	require.NotEmpty(t, rec.errors)
	assert.Equal(t, "risk unavailable", rec.errors[len(rec.errors)-1])
}

func TestCreateRefetchesPair(t *testing.T) {
	svc := &fakeNotes{level: "None"}
	board, rec := newTestBoard(t, svc)

	require.NoError(t, board.Create(context.Background(), "  new observation  "))

	assert.Equal(t, []string{"Note created"}, rec.successes)
	assert.Equal(t, []string{"POST /notes", "GET /notes", "GET /risk"}, svc.requests)
}

func TestCreateBlankContentRefused(t *testing.T) {
	svc := &fakeNotes{level: "None"}
	board, _ := newTestBoard(t, svc)

	assert.ErrorIs(t, board.Create(context.Background(), "   "), ErrBlankContent)
	assert.Empty(t, svc.requests)
}

func TestUpdateRefetchesPair(t *testing.T) {
	svc := &fakeNotes{level: "None"}
	board, rec := newTestBoard(t, svc)

	require.NoError(t, board.Update(context.Background(), "n1", "revised"))

	assert.Equal(t, []string{"Note updated"}, rec.successes)
	assert.Equal(t, []string{"PUT /notes", "GET /notes", "GET /risk"}, svc.requests)
}

func TestDeleteConfirmedRefetchesPair(t *testing.T) {
	svc := &fakeNotes{level: "None"}
	board, rec := newTestBoard(t, svc)

	require.NoError(t, board.Delete(context.Background(), "n1", func(string) bool { return true }))

	assert.Equal(t, []string{"Note deleted"}, rec.successes)
	assert.Equal(t, []string{"DELETE /notes", "GET /notes", "GET /risk"}, svc.requests)
}

func TestDeleteDeclinedIssuesNoRequest(t *testing.T) {
	svc := &fakeNotes{level: "None"}
	board, rec := newTestBoard(t, svc)

	require.NoError(t, board.Delete(context.Background(), "n1", func(string) bool { return false }))
	assert.Empty(t, svc.requests)
	assert.Empty(t, rec.successes)
}

func TestBoardBusyGuard(t *testing.T) {
	board, _ := newTestBoard(t, &fakeNotes{level: "None"})
	board.busy = true

	assert.ErrorIs(t, board.Fetch(context.Background()), ErrBusy)
	assert.ErrorIs(t, board.Create(context.Background(), "text"), ErrBusy)
	assert.ErrorIs(t, board.Update(context.Background(), "n1", "text"), ErrBusy)
	assert.ErrorIs(t, board.Delete(context.Background(), "n1", nil), ErrBusy)
}
