package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to set up config file")
	return path
}

func TestLoad_NativeSyntax(t *testing.T) {
	// --- Arrange ---
	path := writeConfig(t, "config.hcl", `
file_extension = ".jsc"
do_not_compile = ["config", "index"]
backup_dir     = "archive"

project_types = {
  demo = ["a", "b"]
  api  = ["srv/routes"]
}

compiler {
  command = "node"
  args    = ["compile.js", "${input}", "--out=${output}"]
}
`)

	// --- Act ---
	s, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, ".jsc", s.FileExtension())
	assert.Equal(t, ".js", s.SourceExtension())
	assert.Equal(t, "archive", s.BackupDir())
	assert.True(t, s.Excluded("config"))
	assert.True(t, s.Excluded("index"))

	dirs, ok := s.ProjectType("demo")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, dirs)

	c := s.Compiler()
	require.NotNil(t, c)
	assert.Equal(t, "node", c.Command)
	require.Len(t, c.Args, 3)

	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{
		"input":  cty.StringVal("src/app.js"),
		"output": cty.StringVal("src/app.jsc"),
	}}
	v, diags := c.Args[2].Value(evalCtx)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, "--out=src/app.jsc", v.AsString())
}

func TestLoad_JSONSyntax(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "project_types": {"demo": ["a", "b"]},
  "do_not_compile": ["config"],
  "file_extension": ".jsc"
}`)

	s, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	dirs, ok := s.ProjectType("demo")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, dirs)
	assert.True(t, s.Excluded("config"))
	assert.Equal(t, "backups", s.BackupDir())
	assert.Nil(t, s.Compiler())
}

func TestLoad_CompilerWithoutArgs(t *testing.T) {
	path := writeConfig(t, "config.hcl", `
file_extension = ".jsc"
compiler {
  command = "bytenode"
}
`)

	s, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, s.Compiler())
	assert.Empty(t, s.Compiler().Args)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"syntax error", "config.hcl", `file_extension = `, "failed to parse"},
		{"missing required attribute", "config.hcl", `do_not_compile = []`, "failed to decode"},
		{"unknown attribute", "config.hcl", "file_extension = \".jsc\"\ncolour = true\n", "failed to decode"},
		{"invalid value", "config.hcl", `file_extension = "jsc"`, "must start with '.'"},
		{"args not a list", "config.hcl", "file_extension = \".jsc\"\ncompiler {\n command = \"node\"\n args = \"x\"\n}\n", "invalid compiler block"},
		{"broken json", "config.json", `{"file_extension": `, "failed to parse"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.file, tc.content)

			_, err := NewLoader().Load(context.Background(), path)

			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
