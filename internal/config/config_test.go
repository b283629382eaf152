package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Experimental.Enabled ──────────────────────────────────────────────────────

func TestExperimental_Enabled_BooleanValue(t *testing.T) {
	e := Experimental{
		"aggressiveSweep": json.RawMessage(`true`),
		"disabledThing":   json.RawMessage(`false`),
	}

	assert.True(t, e.Enabled("aggressiveSweep"))
	assert.False(t, e.Enabled("disabledThing"))
}

func TestExperimental_Enabled_StanzaValue(t *testing.T) {
	e := Experimental{
		"fancyFetch": json.RawMessage(`{"enabled": true, "burst": 4}`),
		"offStanza":  json.RawMessage(`{"enabled": false}`),
	}

	assert.True(t, e.Enabled("fancyFetch"))
	assert.False(t, e.Enabled("offStanza"))
}

func TestExperimental_Enabled_MissingOrUndecodable(t *testing.T) {
	e := Experimental{
		"weird": json.RawMessage(`"just a string"`),
	}

	assert.False(t, e.Enabled("absent"))
	assert.False(t, e.Enabled("weird"))
}

func TestExperimental_Enabled_NilMap(t *testing.T) {
	var e Experimental
	assert.False(t, e.Enabled("anything"))
}

// ── Experimental.Decode ───────────────────────────────────────────────────────

func TestExperimental_Decode_Present(t *testing.T) {
	e := Experimental{
		"fancyFetch": json.RawMessage(`{"enabled": true, "burst": 4}`),
	}

	var stanza struct {
		Enabled bool `json:"enabled"`
		Burst   int  `json:"burst"`
	}

	found, err := e.Decode("fancyFetch", &stanza)

	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, stanza.Enabled)
	assert.Equal(t, 4, stanza.Burst)
}

func TestExperimental_Decode_Missing(t *testing.T) {
	e := Experimental{}

	var v bool
	found, err := e.Decode("absent", &v)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestExperimental_Decode_TypeMismatch(t *testing.T) {
	e := Experimental{
		"toggle": json.RawMessage(`true`),
	}

	var v struct{ X int }
	found, err := e.Decode("toggle", &v)

	assert.True(t, found)
	require.Error(t, err)
}
