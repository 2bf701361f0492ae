package stub

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikkune/MediLabo/internal/domain/note"
	"github.com/Nikkune/MediLabo/internal/domain/patient"
	"github.com/Nikkune/MediLabo/internal/domain/risk"
	"github.com/Nikkune/MediLabo/internal/platform/api"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type clients struct {
	patients *patient.Client
	notes    *note.Client
	risks    *risk.Client
}

func newTestServer(t *testing.T) clients {
	t.Helper()
	s := New("medilabo", "medilabo123", zerolog.Nop())
	s.now = func() time.Time { return testNow }
	srv := httptest.NewServer(s.Echo())
	t.Cleanup(srv.Close)

	ch := api.NewChannel(srv.URL, "medilabo", "medilabo123", 5*time.Second, zerolog.Nop())
	return clients{
		patients: patient.NewClient(ch),
		notes:    note.NewClient(ch),
		risks:    risk.NewClient(ch),
	}
}

func anaLee(age int) patient.Payload {
	birth := api.NewTime(testNow.AddDate(-age, 0, -1))
	return patient.Payload{
		FirstName: "Anabel",
		LastName:  "Leeston",
		BirthDate: birth,
		Gender:    patient.GenderFemale,
	}
}

func TestRejectsWrongCredentials(t *testing.T) {
	s := New("medilabo", "medilabo123", zerolog.Nop())
	srv := httptest.NewServer(s.Echo())
	t.Cleanup(srv.Close)

	ch := api.NewChannel(srv.URL, "medilabo", "wrong", 5*time.Second, zerolog.Nop())
	res := patient.NewClient(ch).All(context.Background())
	failure, failed := res.Failure()
	require.True(t, failed)
	assert.Equal(t, "Unauthorized", failure.Message)
}

func TestPatientLifecycle(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	created := c.patients.Create(ctx, anaLee(40))
	_, failed := created.Failure()
	require.False(t, failed)
	assert.Equal(t, "Anabel", created.Value().FirstName)

	all := c.patients.All(ctx)
	_, failed = all.Failure()
	require.False(t, failed)
	require.Len(t, all.Value(), 1)

	updated := anaLee(40)
	updated.Address = "12 Main St"
	res := c.patients.Update(ctx, updated)
	_, failed = res.Failure()
	require.False(t, failed)
	require.NotNil(t, res.Value().Address)
	assert.Equal(t, "12 Main St", *res.Value().Address)

	del := c.patients.Delete(ctx, "Anabel", "Leeston")
	_, failed = del.Failure()
	require.False(t, failed)

	all = c.patients.All(ctx)
	_, failed = all.Failure()
	require.False(t, failed)
	assert.Empty(t, all.Value())
}

func TestCreateDuplicateConflicts(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, failed := c.patients.Create(ctx, anaLee(40)).Failure()
	require.False(t, failed)

	failure, failed := c.patients.Create(ctx, anaLee(40)).Failure()
	require.True(t, failed)
	assert.Equal(t, "Conflict", failure.Message)
	require.NotNil(t, failure.ErrCode)
	assert.Equal(t, "Patient already exists", *failure.ErrCode)
}

func TestUpdateMissingPatientNotFound(t *testing.T) {
	c := newTestServer(t)

	failure, failed := c.patients.Update(context.Background(), anaLee(40)).Failure()
	require.True(t, failed)
	assert.Equal(t, "Not found", failure.Message)
}

func TestCreateValidationErrors(t *testing.T) {
	c := newTestServer(t)

	bad := patient.Payload{FirstName: "Al", Gender: "X", PhoneNumber: "12345"}
	failure, failed := c.patients.Create(context.Background(), bad).Failure()
	require.True(t, failed)

	assert.Equal(t, map[string]string{
		"firstName":   "size must be between 3 and 100",
		"lastName":    "Last name must be provided",
		"gender":      "Gender must be either M or F",
		"phoneNumber": "Phone number must be xxx-xxx-xxxx",
	}, failure.Errors)
	assert.Equal(t,
		"Bad request: firstName: size must be between 3 and 100, gender: Gender must be either M or F, "+
			"lastName: Last name must be provided, phoneNumber: Phone number must be xxx-xxx-xxxx",
		failure.Message)
}

func TestFutureBirthDateRejected(t *testing.T) {
	c := newTestServer(t)

	p := anaLee(40)
	p.BirthDate = api.NewTime(testNow.AddDate(1, 0, 0))
	failure, failed := c.patients.Create(context.Background(), p).Failure()
	require.True(t, failed)
	assert.Equal(t, "must be a past date", failure.Errors["birthDate"])
}

func TestNoteLifecycleAndPatientCheck(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	// notes for an unknown patient are refused
	failure, failed := c.notes.Create(ctx, "Ghost", "Nobody", "anything").Failure()
	require.True(t, failed)
	assert.Equal(t, "Not found", failure.Message)

	_, failed = c.patients.Create(ctx, anaLee(40)).Failure()
	require.False(t, failed)

	created := c.notes.Create(ctx, "Anabel", "Leeston", "Patient is a smoker")
	_, failed = created.Failure()
	require.False(t, failed)
	id := created.Value().ID
	require.NotEmpty(t, id)
	assert.Equal(t, testNow, created.Value().CreatedAt.Time)

	listed := c.notes.List(ctx, "Anabel", "Leeston")
	_, failed = listed.Failure()
	require.False(t, failed)
	require.Len(t, listed.Value(), 1)

	_, failed = c.notes.Update(ctx, id, "Patient quit smoking").Failure()
	require.False(t, failed)
	listed = c.notes.List(ctx, "Anabel", "Leeston")
	assert.Equal(t, "Patient quit smoking", listed.Value()[0].Note)

	_, failed = c.notes.Delete(ctx, id).Failure()
	require.False(t, failed)
	listed = c.notes.List(ctx, "Anabel", "Leeston")
	assert.Empty(t, listed.Value())

	failure, failed = c.notes.Delete(ctx, id).Failure()
	require.True(t, failed)
	assert.Equal(t, "Not found", failure.Message)
}

func TestRiskEndpoint(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, failed := c.patients.Create(ctx, anaLee(40)).Failure()
	require.False(t, failed)

	res := c.risks.Get(ctx, "Anabel", "Leeston")
	_, failed = res.Failure()
	require.False(t, failed)
	assert.Equal(t, risk.LevelNone, res.Value())

	_, failed = c.notes.Create(ctx, "Anabel", "Leeston", "Smoker, reports Dizziness and abnormal Weight").Failure()
	require.False(t, failed)

	res = c.risks.Get(ctx, "Anabel", "Leeston")
	_, failed = res.Failure()
	require.False(t, failed)
	assert.Equal(t, risk.LevelBorderline, res.Value())
}
