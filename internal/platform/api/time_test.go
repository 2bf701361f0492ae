package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeDecodesWireForms(t *testing.T) {
	cases := map[string]string{
		"rfc3339":   `"1990-01-01T00:00:00Z"`,
		"offset":    `"1990-01-01T00:00:00.000+00:00"`,
		"no zone":   `"1990-01-01T00:00:00"`,
		"bare date": `"1990-01-01"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var ts Time
			require.NoError(t, json.Unmarshal([]byte(raw), &ts))
			assert.Equal(t, 1990, ts.Year())
		})
	}
}

func TestTimeRejectsGarbage(t *testing.T) {
	var ts Time
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimeMarshalsRFC3339UTC(t *testing.T) {
	var ts Time
	require.NoError(t, json.Unmarshal([]byte(`"1990-01-01T02:00:00+02:00"`), &ts))
	encoded, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"1990-01-01T00:00:00Z"`, string(encoded))
}
