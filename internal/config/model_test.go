package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AppliesDefaults(t *testing.T) {
	s, err := Build(Document{FileExtension: ".jsc"})
	require.NoError(t, err)

	assert.Equal(t, ".js", s.SourceExtension())
	assert.Equal(t, "backups", s.BackupDir())
	assert.Equal(t, ".jsc", s.FileExtension())
	assert.Nil(t, s.Compiler())
	assert.Empty(t, s.ProjectTypeNames())
}

func TestBuild_ProjectTypesAreCopied(t *testing.T) {
	dirs := []string{"a", "b"}
	s, err := Build(Document{
		FileExtension: ".jsc",
		ProjectTypes:  map[string][]string{"demo": dirs, "api": {"srv"}},
	})
	require.NoError(t, err)

	dirs[0] = "mutated"
	got, ok := s.ProjectType("demo")
	require.True(t, ok)
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("project dirs mismatch (-want +got):\n%s", diff)
	}

	got[1] = "mutated too"
	again, _ := s.ProjectType("demo")
	assert.Equal(t, "b", again[1])

	assert.Equal(t, []string{"api", "demo"}, s.ProjectTypeNames())

	_, ok = s.ProjectType("missing")
	assert.False(t, ok)
}

func TestBuild_Exclusions(t *testing.T) {
	s, err := Build(Document{
		FileExtension: ".jsc",
		DoNotCompile:  []string{"config", "index.js"},
	})
	require.NoError(t, err)

	assert.True(t, s.Excluded("config"))
	assert.True(t, s.Excluded("index"))
	assert.False(t, s.Excluded("app"))
}

func TestBuild_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		doc  Document
		want string
	}{
		{"missing extension", Document{}, "file_extension is required"},
		{"extension without dot", Document{FileExtension: "jsc"}, "must start with '.'"},
		{"same as source", Document{FileExtension: ".js"}, "must differ"},
		{"empty project", Document{FileExtension: ".jsc", ProjectTypes: map[string][]string{"demo": nil}}, `"demo" has no directories`},
		{"blank project name", Document{FileExtension: ".jsc", ProjectTypes: map[string][]string{" ": {"a"}}}, "must not be empty"},
		{"compiler without command", Document{FileExtension: ".jsc", Compiler: &Compiler{}}, "compiler.command is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestWithBackupDir_LeavesOriginalUntouched(t *testing.T) {
	s, err := Build(Document{FileExtension: ".jsc"})
	require.NoError(t, err)

	c := s.WithBackupDir("elsewhere")
	assert.Equal(t, "elsewhere", c.BackupDir())
	assert.Equal(t, "backups", s.BackupDir())
}
