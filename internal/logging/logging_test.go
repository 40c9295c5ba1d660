package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup(Options{Level: "info", Format: "json", Output: &buf}))
	t.Cleanup(func() { _ = Setup(Options{Level: "warn"}) })

	Logger.WithField("category", "mental").Info("generated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "mental", entry["category"])
}

func TestSetup_RejectsBadInput(t *testing.T) {
	assert.Error(t, Setup(Options{Level: "loud"}))
	assert.Error(t, Setup(Options{Level: "info", Format: "xml"}))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, logrus.FieldLogger(Logger), FromContext(context.Background()))

	scoped := Logger.WithField("request_id", "abc")
	ctx := NewContext(context.Background(), scoped)
	assert.Equal(t, logrus.FieldLogger(scoped), FromContext(ctx))
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("MATES_LOG_LEVEL", "debug")
	t.Setenv("MATES_LOG_FORMAT", "")

	opts := OptionsFromEnv("warn")
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, "text", opts.Format)
}
