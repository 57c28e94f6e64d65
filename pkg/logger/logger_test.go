package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"greencity/config"
	"greencity/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWithoutInit(t *testing.T) {
	t.Cleanup(ReplaceForTest(nil))

	assert.NotPanics(t, func() {
		Info("no logger yet")
		Error("still none")
		FromContext(context.Background()).Warn("nop")
		WithFields(map[string]any{"event_id": 1}).Info("nop")
	})
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestUpdateLevelAppliesToInitializedLogger(t *testing.T) {
	t.Cleanup(ReplaceForTest(Get()))
	require.NoError(t, Init(&config.LogConfig{Level: "debug", Output: "stdout"}, "development"))

	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
	UpdateLevel("warn")
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Core().Enabled(zapcore.WarnLevel))
}

func TestFileOutputRotatesIntoDirectory(t *testing.T) {
	t.Cleanup(ReplaceForTest(Get()))
	path := filepath.Join(t.TempDir(), "nested", "greencity.log")

	require.NoError(t, Init(&config.LogConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	}, "production"))

	Info("event created", zap.Int64("event_id", 7))
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event_id":7`)
	assert.Contains(t, string(data), `"msg":"event created"`)
}

func TestFromContextCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(ReplaceForTest(zap.New(core)))

	ctx := persistence.ContextWithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("scoped")
	FromContext(context.Background()).Info("unscoped")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestWithFieldsTypes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(ReplaceForTest(zap.New(core)))

	WithFields(map[string]any{
		"user_id":  int64(3),
		"language": "ua",
		"viewed":   false,
		"err":      errors.New("mail service down"),
	}).Info("notification")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(3), fields["user_id"])
	assert.Equal(t, "ua", fields["language"])
	assert.Equal(t, false, fields["viewed"])
	assert.Equal(t, "mail service down", fields["err"])
}
