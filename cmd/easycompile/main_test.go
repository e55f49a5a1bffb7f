package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/easycompile/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A configuration with a syntax error must stop the run before any file I/O.
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte("file_extension = "), 0o600))
	src := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(src, []byte("app()"), 0o600))

	// --- Act ---
	err := run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--config", cfgPath, src})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.FileExists(t, src)
	assert.NoDirExists(t, filepath.Join(dir, "backups"))
}

func TestRun_MissingTargetExitsNonZero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.hcl")
	backups := filepath.Join(dir, "backups")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`file_extension = ".jsc"`), 0o600))
	missing := filepath.Join(dir, "nowhere")

	out := &bytes.Buffer{}
	err := run(context.Background(), strings.NewReader(""), out, &bytes.Buffer{},
		[]string{"--config", cfgPath, "--backup-dir", backups, "--report-delay", "0s", missing})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Code)
	assert.Contains(t, out.String(), "does not exist")
	assert.NoDirExists(t, backups)
}

func TestRun_NonSourceFileTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`file_extension = ".jsc"`), 0o600))

	out := &bytes.Buffer{}
	// The config file itself is an existing, non-.js file: nothing to compile.
	err := run(context.Background(), strings.NewReader(""), out, &bytes.Buffer{},
		[]string{"--config", cfgPath, "--report-delay", "0s", cfgPath})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Compiled")
	assert.Contains(t, out.String(), "Thank you for using Easy Compile.")
}
