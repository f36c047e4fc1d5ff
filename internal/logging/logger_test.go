package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewJSON_NormalizesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSON(&buf, slog.LevelInfo)
	logger.Info("boom", "error", errors.New("bad"))
	assert.Contains(t, buf.String(), `"err":"bad"`)
	assert.NotContains(t, buf.String(), `"error"`)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.Level(true))
	assert.Equal(t, slog.LevelInfo, logging.Level(false))
	assert.False(t, logging.NewNop().Enabled(context.Background(), slog.LevelError))
}
