package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/radar/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithFeed adds feed to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithFeed(ctx, "OpenAI:News")

		// Extract logger and verify it has the feed field
		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithCompany adds company to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithCompany(ctx, "NVIDIA")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithOperation adds operation to context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithOperation(ctx, "merge_batch")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("WithFields adds custom fields to context", func(t *testing.T) {
		ctx := context.Background()
		fields := map[string]interface{}{
			"candidates": 42,
			"run_id":     "abc-def",
		}
		ctx = logging.WithFields(ctx, fields)

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("FromContext returns logger from context", func(t *testing.T) {
		ctx := context.Background()

		// First call should return the default logger
		logger1 := logging.FromContext(ctx)
		assert.NotNil(t, logger1)

		// Add feed and get logger again
		ctx = logging.WithFeed(ctx, "AWS:ML")
		logger2 := logging.FromContext(ctx)
		assert.NotNil(t, logger2)
	})

	t.Run("Ctx extracts logger from context", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithFeed(ctx, "HuggingFace:Blog")

		logger := logging.Ctx(ctx)
		assert.NotNil(t, logger)
	})

	t.Run("chaining context functions", func(t *testing.T) {
		ctx := context.Background()
		ctx = logging.WithRunID(ctx, "run-1")
		ctx = logging.WithFeed(ctx, "Google:DeepMind")
		ctx = logging.WithCompany(ctx, "Google")
		ctx = logging.WithOperation(ctx, "classify")

		logger := logging.FromContext(ctx)
		assert.NotNil(t, logger)
		assert.Equal(t, "run-1", logging.RunID(ctx))
	})
}
