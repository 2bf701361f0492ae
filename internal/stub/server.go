// Package stub is an in-memory double of the record service, used for local
// development and integration tests. It speaks the same wire contract as the
// real collaborator: Basic auth on every route, patient identity by
// firstName+lastName, and {success:false, message, error, errors} failure
// bodies.
package stub

import (
	"crypto/subtle"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Nikkune/MediLabo/internal/domain/patient"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// failBody mirrors the failure shape of the real service.
type failBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ErrCode string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type storedNote struct {
	ID        string    `json:"id"`
	FirstName string    `json:"-"`
	LastName  string    `json:"-"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Server holds the in-memory collections behind the stubbed endpoints.
type Server struct {
	username string
	password string
	logger   zerolog.Logger
	now      func() time.Time

	mu       sync.Mutex
	patients []patient.Patient
	notes    []*storedNote
}

func New(username, password string, logger zerolog.Logger) *Server {
	return &Server{
		username: username,
		password: password,
		logger:   logger,
		now:      time.Now,
	}
}

// Echo wires the routes and middleware into a ready-to-serve instance.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(requestLogger(s.logger))
	e.Use(s.basicAuth)

	e.GET("/patient/all", s.listPatients)
	e.GET("/patient", s.getPatient)
	e.POST("/patient", s.createPatient)
	e.PUT("/patient", s.updatePatient)
	e.DELETE("/patient", s.deletePatient)

	e.GET("/notes", s.listNotes)
	e.POST("/notes", s.createNote)
	e.PUT("/notes", s.updateNote)
	e.DELETE("/notes", s.deleteNote)

	e.GET("/risk", s.assessRisk)
	return e
}

// requestLogger emits one event per request with method, path, status and
// latency.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}
			evt.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")
			return err
		}
	}
}

func (s *Server) basicAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, password, ok := c.Request().BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
			return c.JSON(http.StatusUnauthorized, failBody{Message: "Unauthorized"})
		}
		return next(c)
	}
}

// -- Patients --

func (s *Server) listPatients(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]patient.Patient, len(s.patients))
	copy(out, s.patients)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getPatient(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findPatient(c.QueryParam("firstName"), c.QueryParam("lastName"))
	if idx < 0 {
		return notFound(c, "Patient not found")
	}
	return c.JSON(http.StatusOK, s.patients[idx])
}

func (s *Server) createPatient(c echo.Context) error {
	var p patient.Payload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, map[string]string{"body": "must be valid JSON"})
	}
	if errs := s.validatePatient(p, true); len(errs) > 0 {
		return badRequest(c, errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findPatient(p.FirstName, p.LastName) >= 0 {
		return c.JSON(http.StatusConflict, failBody{Message: "Conflict", ErrCode: "Patient already exists"})
	}
	record := recordFromPayload(p)
	s.patients = append(s.patients, record)
	return c.JSON(http.StatusOK, record)
}

func (s *Server) updatePatient(c echo.Context) error {
	var p patient.Payload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, map[string]string{"body": "must be valid JSON"})
	}
	if errs := s.validatePatient(p, false); len(errs) > 0 {
		return badRequest(c, errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findPatient(p.FirstName, p.LastName)
	if idx < 0 {
		return notFound(c, "Patient does not exist")
	}
	record := recordFromPayload(p)
	if record.Gender == "" {
		record.Gender = s.patients[idx].Gender
	}
	s.patients[idx] = record
	return c.JSON(http.StatusOK, record)
}

func (s *Server) deletePatient(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findPatient(c.QueryParam("firstName"), c.QueryParam("lastName"))
	if idx < 0 {
		return notFound(c, "Patient not found")
	}
	s.patients = append(s.patients[:idx], s.patients[idx+1:]...)
	return c.NoContent(http.StatusOK)
}

// findPatient returns the index for a natural key, -1 when absent. Callers
// hold the lock.
func (s *Server) findPatient(firstName, lastName string) int {
	for i, p := range s.patients {
		if p.FirstName == firstName && p.LastName == lastName {
			return i
		}
	}
	return -1
}

// validatePatient applies the collaborator's field rules. Gender is required
// on create only, matching the service's validation groups.
func (s *Server) validatePatient(p patient.Payload, create bool) map[string]string {
	errs := map[string]string{}
	checkName := func(field, value, label string) {
		switch {
		case strings.TrimSpace(value) == "":
			errs[field] = label + " must be provided"
		case len(value) < 3 || len(value) > 100:
			errs[field] = "size must be between 3 and 100"
		}
	}
	checkName("firstName", p.FirstName, "First name")
	checkName("lastName", p.LastName, "Last name")

	if p.Gender == "" {
		if create {
			errs["gender"] = "Gender must be provided"
		}
	} else if p.Gender != patient.GenderMale && p.Gender != patient.GenderFemale {
		errs["gender"] = "Gender must be either M or F"
	}
	if p.BirthDate != nil && !p.BirthDate.Before(s.now()) {
		errs["birthDate"] = "must be a past date"
	}
	if p.PhoneNumber != "" && !phonePattern.MatchString(p.PhoneNumber) {
		errs["phoneNumber"] = "Phone number must be xxx-xxx-xxxx"
	}
	return errs
}

func recordFromPayload(p patient.Payload) patient.Patient {
	record := patient.Patient{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Gender:    p.Gender,
	}
	if p.Address != "" {
		address := p.Address
		record.Address = &address
	}
	if p.PhoneNumber != "" {
		phone := p.PhoneNumber
		record.PhoneNumber = &phone
	}
	return record
}

// -- Notes --

type notePayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Note      string `json:"note"`
}

func (s *Server) listNotes(c echo.Context) error {
	firstName, lastName := c.QueryParam("firstName"), c.QueryParam("lastName")
	if firstName == "" || lastName == "" {
		return badRequest(c, map[string]string{"firstName": "must not be blank", "lastName": "must not be blank"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*storedNote, 0)
	for _, n := range s.notes {
		if n.FirstName == firstName && n.LastName == lastName {
			out = append(out, n)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createNote(c echo.Context) error {
	var p notePayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, map[string]string{"body": "must be valid JSON"})
	}
	errs := map[string]string{}
	for field, value := range map[string]string{"firstName": p.FirstName, "lastName": p.LastName, "note": p.Note} {
		if strings.TrimSpace(value) == "" {
			errs[field] = "must not be blank"
		}
	}
	if len(errs) > 0 {
		return badRequest(c, errs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findPatient(p.FirstName, p.LastName) < 0 {
		return notFound(c, "Patient not found")
	}
	now := s.now()
	n := &storedNote{
		ID:        uuid.NewString(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Note:      p.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, n)
	return c.JSON(http.StatusOK, n)
}

func (s *Server) updateNote(c echo.Context) error {
	var p notePayload
	if err := c.Bind(&p); err != nil {
		return badRequest(c, map[string]string{"body": "must be valid JSON"})
	}
	if strings.TrimSpace(p.Note) == "" {
		return badRequest(c, map[string]string{"note": "must not be blank"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.findNote(c.QueryParam("id"))
	if n == nil {
		return notFound(c, "Note not found")
	}
	n.Note = p.Note
	n.UpdatedAt = s.now()
	return c.JSON(http.StatusOK, n)
}

func (s *Server) deleteNote(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.QueryParam("id")
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return c.NoContent(http.StatusOK)
		}
	}
	return notFound(c, "Note not found")
}

func (s *Server) findNote(id string) *storedNote {
	for _, n := range s.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// -- Risk --

func (s *Server) assessRisk(c echo.Context) error {
	firstName, lastName := c.QueryParam("firstName"), c.QueryParam("lastName")

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findPatient(firstName, lastName)
	if idx < 0 {
		return notFound(c, "Patient not found")
	}
	p := s.patients[idx]

	texts := make([]string, 0)
	for _, n := range s.notes {
		if n.FirstName == firstName && n.LastName == lastName {
			texts = append(texts, n.Note)
		}
	}
	level := assess(p, texts, s.now())
	return c.String(http.StatusOK, string(level))
}

// -- Failure helpers --

func badRequest(c echo.Context, errs map[string]string) error {
	return c.JSON(http.StatusBadRequest, failBody{Message: "Bad request", Errors: errs})
}

func notFound(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, failBody{Message: "Not found", ErrCode: detail})
}
