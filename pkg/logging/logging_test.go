package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	ctx, id := WithCorrelationID(context.Background())
	FromContext(ctx, logger).Debug("loaded")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "loaded", line["msg"])
	assert.Equal(t, id, line[CorrelationIDField])
}

func TestNewRejectsUnknownLevelAndFormat(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestWithCorrelationIDKeepsExisting(t *testing.T) {
	ctx, first := WithCorrelationID(context.Background())
	ctx, second := WithCorrelationID(ctx)
	assert.Equal(t, first, second)
	assert.Equal(t, first, CorrelationID(ctx))
	assert.Empty(t, CorrelationID(context.Background()))
}
