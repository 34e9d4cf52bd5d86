//go:build !js
// +build !js

package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	for _, level := range []consoleType{LevelDebug, LevelLog, LevelWarn, LevelError} {
		assert.Equal(t, level, ParseLevel(level.String()))
		assert.True(t, level.Valid())
	}
	assert.False(t, ParseLevel("loud").Valid())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	previous := Level()
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(previous)
	})

	SetLevel(LevelWarn)
	assert.Zero(t, Debug("hidden"))
	assert.Zero(t, Printf("hidden %d", 1))
	assert.NotZero(t, Warnf("shown %d", 2))
	assert.NotZero(t, Error("also shown"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "warn: ")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "TestLevelFiltering()")

	SetLevel(ParseLevel("nonsense"))
	assert.Equal(t, LevelWarn, Level())
}
