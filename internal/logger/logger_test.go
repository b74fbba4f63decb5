package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	Init()
	require.NotNil(t, log)

	// Logging must not panic once initialized.
	Info("info message", "key", "value")
	Debug("debug message")
	Warn("warn message")
	Error("error message", Err(errors.New("boom")))
}

func TestErrAttr(t *testing.T) {
	attr := Err(errors.New("something failed"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "something failed", attr.Value.String())
}

func TestLazyInit(t *testing.T) {
	log = nil
	// Calling a log function before Init must initialize the logger.
	Info("lazy init")
	assert.NotNil(t, log)
}
