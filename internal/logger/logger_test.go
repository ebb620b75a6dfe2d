package logger_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/mathsprout/internal/logger"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "WARN")
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false)).
		WithFields(map[string]any{"zeta": 1, "alpha": 2}).
		WithPrefix("stats")

	log.Info("aggregated")

	out := buf.String()
	assert.Contains(t, out, "[stats]")
	assert.Contains(t, out, "alpha=2 zeta=1")
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false))

	log.WithError(errors.New("boom")).Error("failed")
	log.WithError(nil).Info("fine")

	out := buf.String()
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "fine")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel("ERROR"))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.New(logger.WithPrefix("request"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
