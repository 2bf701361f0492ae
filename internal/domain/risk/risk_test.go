package risk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikkune/MediLabo/internal/platform/api"
)

func TestSeverityOrdering(t *testing.T) {
	assert.Greater(t, LevelInDanger.Severity(), LevelEarlyOnset.Severity())
	assert.Greater(t, LevelEarlyOnset.Severity(), LevelBorderline.Severity())
	assert.Greater(t, LevelBorderline.Severity(), LevelNone.Severity())
	assert.Equal(t, LevelNone.Severity(), Level("whatever").Severity())
}

func TestColorMapping(t *testing.T) {
	assert.Equal(t, ColorError, LevelInDanger.Color())
	assert.Equal(t, ColorWarning, LevelEarlyOnset.Color())
	assert.Equal(t, ColorInfo, LevelBorderline.Color())
	assert.Equal(t, ColorSuccess, LevelNone.Color())
	assert.Equal(t, ColorSuccess, Level("unrecognized").Color())
}

func TestParseDefaultsToNone(t *testing.T) {
	assert.Equal(t, LevelInDanger, Parse("In Danger"))
	assert.Equal(t, LevelNone, Parse(""))
	assert.Equal(t, LevelNone, Parse("Critical"))
}

func TestClientGetDecodesBareLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Ana", r.URL.Query().Get("firstName"))
		assert.Equal(t, "Lee", r.URL.Query().Get("lastName"))
		w.Write([]byte("Borderline"))
	}))
	defer srv.Close()

	ch := api.NewChannel(srv.URL, "medilabo", "medilabo123", 5*time.Second, zerolog.Nop())
	res := NewClient(ch).Get(context.Background(), "Ana", "Lee")
	_, failed := res.Failure()
	require.False(t, failed)
	assert.Equal(t, LevelBorderline, res.Value())
}
