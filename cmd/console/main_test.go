package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	prodLogger := newLogger(&buf, false)
	prodLogger.Info().Str("env", "production").Msg("configuration loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "configuration loaded", entry["message"])
	assert.Equal(t, "production", entry["env"])

	buf.Reset()
	devLogger := newLogger(&buf, true)
	devLogger.Info().Msg("configuration loaded")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "development output is for humans")
	assert.Contains(t, buf.String(), "configuration loaded")
}
