package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

const (
	// DefaultSourceExtension is the extension of files picked up for compilation.
	DefaultSourceExtension = ".js"
	// DefaultBackupDir is where original sources are copied before deletion.
	DefaultBackupDir = "backups"
)

// Document is the decoded, not yet validated configuration as produced by a
// format-specific loader.
type Document struct {
	ProjectTypes    map[string][]string
	DoNotCompile    []string
	FileExtension   string
	SourceExtension string
	BackupDir       string
	Compiler        *Compiler
}

// Compiler describes the external command used to compile a single file.
// Args are templates that may reference the `input` and `output` variables.
type Compiler struct {
	Command string
	Args    []hcl.Expression
}

// Settings is the validated configuration. It is never mutated after Build.
type Settings struct {
	projectTypes    map[string][]string
	exclusions      map[string]struct{}
	fileExtension   string
	sourceExtension string
	backupDir       string
	compiler        *Compiler
}

// Build validates a decoded document, fills in defaults and returns the
// resulting Settings.
func Build(doc Document) (*Settings, error) {
	if doc.FileExtension == "" {
		return nil, fmt.Errorf("%w: file_extension is required", ErrInvalid)
	}
	if !strings.HasPrefix(doc.FileExtension, ".") {
		return nil, fmt.Errorf("%w: file_extension %q must start with '.'", ErrInvalid, doc.FileExtension)
	}

	s := &Settings{
		projectTypes:    make(map[string][]string, len(doc.ProjectTypes)),
		exclusions:      make(map[string]struct{}, len(doc.DoNotCompile)),
		fileExtension:   doc.FileExtension,
		sourceExtension: doc.SourceExtension,
		backupDir:       doc.BackupDir,
	}
	if s.sourceExtension == "" {
		s.sourceExtension = DefaultSourceExtension
	}
	if !strings.HasPrefix(s.sourceExtension, ".") {
		return nil, fmt.Errorf("%w: source_extension %q must start with '.'", ErrInvalid, s.sourceExtension)
	}
	if s.sourceExtension == s.fileExtension {
		return nil, fmt.Errorf("%w: file_extension must differ from source_extension %q", ErrInvalid, s.sourceExtension)
	}
	if s.backupDir == "" {
		s.backupDir = DefaultBackupDir
	}

	for name, dirs := range doc.ProjectTypes {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: project type names must not be empty", ErrInvalid)
		}
		if len(dirs) == 0 {
			return nil, fmt.Errorf("%w: project type %q has no directories", ErrInvalid, name)
		}
		s.projectTypes[name] = slices.Clone(dirs)
	}

	for _, name := range doc.DoNotCompile {
		// Entries are base names, but tolerate a trailing source extension.
		s.exclusions[strings.TrimSuffix(name, s.sourceExtension)] = struct{}{}
	}

	if doc.Compiler != nil {
		if doc.Compiler.Command == "" {
			return nil, fmt.Errorf("%w: compiler.command is required when a compiler block is given", ErrInvalid)
		}
		s.compiler = &Compiler{
			Command: doc.Compiler.Command,
			Args:    slices.Clone(doc.Compiler.Args),
		}
	}

	return s, nil
}

// ProjectType returns the ordered directories configured for name.
func (s *Settings) ProjectType(name string) ([]string, bool) {
	dirs, ok := s.projectTypes[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(dirs), true
}

// ProjectTypeNames returns all configured project type names, sorted.
func (s *Settings) ProjectTypeNames() []string {
	return slices.Sorted(maps.Keys(s.projectTypes))
}

// Excluded reports whether a base name (extension stripped) must never be compiled.
func (s *Settings) Excluded(baseName string) bool {
	_, ok := s.exclusions[baseName]
	return ok
}

// FileExtension is the suffix of compiled artifacts, e.g. ".jsc".
func (s *Settings) FileExtension() string { return s.fileExtension }

// SourceExtension is the suffix of files eligible for compilation.
func (s *Settings) SourceExtension() string { return s.sourceExtension }

// BackupDir is the directory that receives original sources.
func (s *Settings) BackupDir() string { return s.backupDir }

// Compiler returns the configured compiler command, or nil to use the default.
func (s *Settings) Compiler() *Compiler { return s.compiler }

// WithBackupDir returns a copy of the settings using a different backup directory.
func (s *Settings) WithBackupDir(dir string) *Settings {
	c := *s
	c.backupDir = dir
	return &c
}
