package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/gameshelf/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)
}

func newTestLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(fixedClock),
	)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logger.Level{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warning": logger.WARN,
		" ERROR ": logger.ERROR,
		"loud":    logger.INFO,
	}
	for in, want := range tests {
		assert.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.WARN)

	log.Info("hidden")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.True(t, strings.HasPrefix(out, "2024-03-09 14:30:00.000 WARN "))
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.DEBUG).
		WithPrefix("insights").
		WithFields(map[string]any{"zeta": 1, "alpha": "a"}).
		WithField("mid", true)

	log.Debug("computed")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[insights]")
	assert.True(t, strings.HasSuffix(line, "computed alpha=a mid=true zeta=1"), line)
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, logger.INFO)
	_ = parent.WithField("user_id", "u1").WithError(errors.New("boom"))

	parent.Info("plain")

	assert.NotContains(t, buf.String(), "user_id")
	assert.NotContains(t, buf.String(), "boom")
}

func TestLogger_WithErrorNil(t *testing.T) {
	log := logger.New()
	assert.Same(t, log, log.WithError(nil))
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, logger.INFO).WithField("request_id", "abc")

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
