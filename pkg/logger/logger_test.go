package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Env: "production", Level: "info", App: "compliance-api"})

	l.Component("tasks").Info().Int("created", 3).Msg("generación completada")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "compliance-api", ev["app"])
	assert.Equal(t, "tasks", ev["component"])
	assert.Equal(t, float64(3), ev["created"])
	assert.Equal(t, "info", ev["level"])
}

func TestLogger_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, Config{Level: "warn"})
	l.Info().Msg("oculto")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("visible")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel_Desconocido(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
	assert.Equal(t, "info", parseLevel("").String())
	assert.Equal(t, "debug", parseLevel("debug").String())
}
