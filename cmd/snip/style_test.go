package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	enabled, err := colorEnabled("always", &buf)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = colorEnabled("never", &buf)
	require.NoError(t, err)
	assert.False(t, enabled)

	// A buffer is never a terminal
	enabled, err = colorEnabled("auto", &buf)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = colorEnabled("sometimes", &buf)
	assert.ErrorContains(t, err, "invalid --color")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	colorMode = "never"

	printError(&buf, errors.New("boom"))
	assert.Equal(t, "snip: boom\n", buf.String())
}

func TestPrintError_Color(t *testing.T) {
	var buf bytes.Buffer
	colorMode = "always"
	defer func() { colorMode = "never" }()

	printError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "boom")
}
