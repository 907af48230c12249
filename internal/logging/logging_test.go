package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestContextCarrier(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf).With("request_id", "r-1")

	ctx := IntoContext(context.Background(), l)
	FromContext(ctx).Info("cart_add", "status", 200)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "cart_add", line["msg"])
	assert.Equal(t, "r-1", line["request_id"])

	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
