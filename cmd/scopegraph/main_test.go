package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/scopegraph/internal/cli"
	"github.com/specialistvlad/scopegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Valid(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.GreetingHCL})
	out, logs := &bytes.Buffer{}, &testutil.SafeBuffer{}

	err := run(context.Background(), out, logs, []string{"--format", "defects", dir})

	require.NoError(t, err)
	assert.Equal(t, "DEFECTS (0)\n", out.String())
}

func TestRun_DefectsExitCode(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": testutil.MissingHCL})
	out, logs := &bytes.Buffer{}, &testutil.SafeBuffer{}

	err := run(context.Background(), out, logs, []string{"-d", filepath.Join(dir, "main.hcl")})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cli.ExitDefects, exitErr.Code)
	assert.Contains(t, out.String(), "MissingDependency: scope Root")
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}

	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_LoadFailure(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": `scope "A" {`})

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{dir})

	require.Error(t, err)
	var exitErr *cli.ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}
