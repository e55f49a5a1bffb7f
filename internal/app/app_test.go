package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/easycompile/internal/compiler"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyCompiler() compiler.Compiler {
	return compiler.Func(func(_ context.Context, src, out string) error {
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		return os.WriteFile(out, data, 0o644)
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewApp_MissingConfig(t *testing.T) {
	cfg := &Config{ConfigPath: filepath.Join(t.TempDir(), "config.hcl")}

	_, err := NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "not found")
}

func TestNewApp_ExplicitMissingConfigIsNotReplaced(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json"), `{"file_extension": ".jsc"}`)
	cfg := &Config{ConfigPath: filepath.Join(dir, "config.hcl"), ConfigExplicit: true}

	_, err := NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewApp_FallsBackToJSONAndTOML(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config.json"), `{"file_extension": ".jsc", "project_types": {"demo": ["a"]}}`)

		a, err := NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, &Config{ConfigPath: filepath.Join(dir, DefaultConfigPath)})
		require.NoError(t, err)
		assert.Equal(t, []string{"demo"}, a.Settings().ProjectTypeNames())
	})

	t.Run("toml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config.toml"), "file_extension = \".bin\"\n")

		a, err := NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, &Config{ConfigPath: filepath.Join(dir, DefaultConfigPath)})
		require.NoError(t, err)
		assert.Equal(t, ".bin", a.Settings().FileExtension())
	})
}

func TestNewApp_BackupDirOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	writeFile(t, path, `file_extension = ".jsc"`)

	a, err := NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, &Config{ConfigPath: path, BackupDir: "/tmp/elsewhere"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere", a.Settings().BackupDir())
}

func TestNewApp_InvalidCompilerTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	writeFile(t, path, `
file_extension = ".jsc"
compiler {
  command = "node"
  args    = ["${source}"]
}
`)

	_, err := NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, &Config{ConfigPath: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "failed to configure compiler")
}

func TestRun_CompilesDirectory(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.hcl")
	writeFile(t, cfgPath, `
file_extension = ".jsc"
do_not_compile = ["keep"]
backup_dir     = "`+filepath.ToSlash(filepath.Join(dir, "backups"))+`"
`)
	src := filepath.Join(dir, "src")
	writeFile(t, filepath.Join(src, "app.js"), "app()")
	writeFile(t, filepath.Join(src, "keep.js"), "keep()")

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	a, err := NewApp(strings.NewReader(""), out, logs, &Config{
		ConfigPath: cfgPath,
		Target:     src,
		HasTarget:  true,
		LogLevel:   "debug",
	}, WithCompiler(copyCompiler()))
	require.NoError(t, err)

	// --- Act ---
	code := a.Run(context.Background())

	// --- Assert ---
	assert.Equal(t, 0, code)
	assert.NoFileExists(t, filepath.Join(src, "app.js"))
	assert.FileExists(t, filepath.Join(src, "app.jsc"))
	assert.FileExists(t, filepath.Join(src, "keep.js"))
	assert.Contains(t, out.String(), "Compiled")
	assert.Contains(t, logs.String(), "App.Run method finished.")
}

func TestRun_NoInteractiveOverridesTerminal(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.hcl")
	writeFile(t, cfgPath, `file_extension = ".jsc"`)

	out := &bytes.Buffer{}
	a, err := NewApp(strings.NewReader("y\n"), out, &bytes.Buffer{}, &Config{
		ConfigPath:    cfgPath,
		Target:        dir,
		HasTarget:     true,
		NoInteractive: true,
	}, WithCompiler(copyCompiler()), WithInteractive(true))
	require.NoError(t, err)

	assert.Equal(t, 0, a.Run(context.Background()))
	assert.NotContains(t, out.String(), "run again")
}
