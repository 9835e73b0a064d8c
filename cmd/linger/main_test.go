package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linger-lang/linger/interp"
)

func TestRunOncePrintsResult(t *testing.T) {
	var out bytes.Buffer
	err := runOnce(&out, `proc main() { return 42; }`, interp.Options{})
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.String())
}

func TestRunOnceSuppressesVoidResult(t *testing.T) {
	var out, program bytes.Buffer
	err := runOnce(&out, `proc main() { print("hi"); }`, interp.Options{Output: &program})
	require.NoError(t, err)
	assert.Equal(t, "hi", program.String())
	assert.Empty(t, out.String())
}

func TestRunOnceReportsError(t *testing.T) {
	var out bytes.Buffer
	err := runOnce(&out, `proc main() { return x; }`, interp.Options{})
	require.Error(t, err)
	assert.Equal(t, `unknown variable "x"`, err.Error())
	assert.Empty(t, out.String())
}
