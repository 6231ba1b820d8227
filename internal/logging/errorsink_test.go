package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reentrantHook struct {
	sink  *ErrorSink
	calls int
}

func (h *reentrantHook) Run(_ *zerolog.Event, _ zerolog.Level, _ string) {
	h.calls++
	h.sink.LogError("hook", "failure while logging")
}

func TestErrorSink_WritesCategory(t *testing.T) {
	var buf bytes.Buffer
	sink := NewErrorSink(zerolog.New(&buf))

	sink.LogError("decorate", "outline refused doc1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "decorate", entry["category"])
	assert.Equal(t, "outline refused doc1", entry["message"])
	assert.Zero(t, sink.Dropped())
	assert.Equal(t, int64(1), sink.Logged())
}

func TestErrorSink_DropsReentrantCalls(t *testing.T) {
	var buf bytes.Buffer
	hook := &reentrantHook{}
	sink := NewErrorSink(zerolog.New(&buf).Hook(hook))
	hook.sink = sink

	sink.LogError("layout", "first")
	sink.LogError("layout", "second")

	assert.Equal(t, 2, hook.calls)
	assert.Equal(t, int64(2), sink.Dropped())
	assert.Equal(t, int64(2), sink.Logged())
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
	assert.NotContains(t, buf.String(), "failure while logging")
}
