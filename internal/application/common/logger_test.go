package common

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContext_FallsBackToDiscard(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	assert.Same(t, DiscardLogger(), logger)
}

func TestLoggerFromContext_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)

	LoggerFromContext(ctx).Info("round started", "round", 2)
	assert.Contains(t, buf.String(), "round started")
	assert.Contains(t, buf.String(), "round=2")
}
