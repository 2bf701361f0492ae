// Package note holds the diagnostic note model, the notes client, and the
// notes-screen board engine that pairs a patient's note history with the
// server-derived risk level.
package note

import "github.com/Nikkune/MediLabo/internal/platform/api"

// Note is a free-text diagnostic note. Identity is the opaque server-issued
// id; timestamps travel as serialized text and resolve at decode.
type Note struct {
	ID        string   `json:"id"`
	Note      string   `json:"note"`
	CreatedAt api.Time `json:"createdAt"`
	UpdatedAt api.Time `json:"updatedAt"`
}

// createPayload is the wire shape for a new note.
type createPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Note      string `json:"note"`
}

// updatePayload rewrites the text of an existing note.
type updatePayload struct {
	Note string `json:"note"`
}
