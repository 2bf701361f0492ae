// Package patient holds the patient record model, the remote client for the
// record service, and the inline-editable grid engine built on top of them.
package patient

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Nikkune/MediLabo/internal/platform/api"
)

// Gender domain. GenderMale is the default for freshly inserted rows.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Patient is the wire representation of a record. Identity is the
// (firstName, lastName) pair; the service issues no id the client can rely
// on. Address and phone number are nullable and stay nil when the service
// omits them.
type Patient struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	BirthDate   *api.Time `json:"birthDate"`
	Gender      string    `json:"gender"`
	Address     *string   `json:"address"`
	PhoneNumber *string   `json:"phoneNumber"`
}

// Payload is the wire shape sent on create and update. Required fields are
// always present (birthDate serializes as null when absent); blank optionals
// are omitted entirely so the server's own defaulting applies, never sent as
// empty strings.
type Payload struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	BirthDate   *api.Time `json:"birthDate"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
}

// Row is the client-side projection of a Patient: the record fields plus a
// local synthetic identifier, stable for the lifetime of the grid and never
// persisted, and the transient new-row marker. Optional fields are plain
// strings here; absent-on-the-wire becomes empty for editing.
type Row struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	BirthDate   *api.Time
	Gender      string
	Address     string
	PhoneNumber string
	IsNew       bool
}

// rowFromPatient maps a fetched record into a row under a fresh local id.
func rowFromPatient(p Patient) Row {
	row := Row{
		ID:        uuid.New(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
		IsNew:     false,
	}
	if p.Address != nil {
		row.Address = *p.Address
	}
	if p.PhoneNumber != nil {
		row.PhoneNumber = *p.PhoneNumber
	}
	return row
}

// payload builds the commit shape from the row's current values. Optional
// fields are trimmed and dropped when blank.
func (r Row) payload() Payload {
	p := Payload{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		BirthDate: r.BirthDate,
		Gender:    r.Gender,
	}
	if address := strings.TrimSpace(r.Address); address != "" {
		p.Address = address
	}
	if phone := strings.TrimSpace(r.PhoneNumber); phone != "" {
		p.PhoneNumber = phone
	}
	return p
}
