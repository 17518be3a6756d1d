package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapturedAdapter(level string) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return NewLogrusAdapterFromLogger(logger), buf
}

func TestNewLogrusAdapter_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger := NewLogrusAdapter("not-a-level", "text")
	require.NotNil(t, logger)
}

func TestLogrusAdapter_InfoWithFields(t *testing.T) {
	logger, buf := newCapturedAdapter("info")

	logger.Info("parsed file",
		Field{Key: "bank", Value: "monzo"},
		Field{Key: "rows", Value: 12})

	out := buf.String()
	assert.Contains(t, out, "parsed file")
	assert.Contains(t, out, "monzo")
	assert.Contains(t, out, "12")
}

func TestLogrusAdapter_DebugSuppressedAtInfoLevel(t *testing.T) {
	logger, buf := newCapturedAdapter("info")

	logger.Debug("should not appear")

	assert.Empty(t, buf.String())
}

func TestLogrusAdapter_WithError(t *testing.T) {
	logger, buf := newCapturedAdapter("info")

	logger.WithError(errors.New("bad amount")).Warn("row skipped")

	out := buf.String()
	assert.Contains(t, out, "row skipped")
	assert.Contains(t, out, "bad amount")
}

func TestLogrusAdapter_WithFieldReturnsNewLogger(t *testing.T) {
	logger, buf := newCapturedAdapter("info")

	child := logger.WithField("import_id", "abc-123")
	child.Info("batch finalized")

	assert.Contains(t, buf.String(), "abc-123")
}
