package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplayBasicTrace(t *testing.T) {
	trace := strings.NewReader(`
# allocate two blocks, free the first, reallocate the second
a x 32
a y 64
c
f x
r y 128
c
`)
	var out bytes.Buffer
	err := replay(trace, &out, false)
	require.NoError(t, err)
	require.Contains(t, out.String(), "ops=6")
	require.Contains(t, out.String(), "checks=2")
}

func TestReplayZeroedAndUnknownID(t *testing.T) {
	trace := strings.NewReader("z b 4 8\nf missing\n")
	var out bytes.Buffer
	err := replay(trace, &out, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown id")
}

func TestReplayRejectsMalformedLine(t *testing.T) {
	trace := strings.NewReader("a onlyone\n")
	var out bytes.Buffer
	err := replay(trace, &out, false)
	require.Error(t, err)
}

func TestReplayVerboseLogsEachOp(t *testing.T) {
	trace := strings.NewReader("a x 16\nf x\n")
	var out bytes.Buffer
	err := replay(trace, &out, true)
	require.NoError(t, err)
	require.Contains(t, out.String(), "a x size=16")
	require.Contains(t, out.String(), "f x")
}
