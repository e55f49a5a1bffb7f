// Package resolve decides what a user-supplied target string refers to: a
// configured project type, a single file or a directory.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrPathNotFound is returned when the input is neither a project type nor
	// an existing filesystem entry.
	ErrPathNotFound = errors.New("does not exist")
	// ErrInvalidPathType is returned for entries that exist but are neither a
	// regular file nor a directory.
	ErrInvalidPathType = errors.New("is not a file or directory")
)

// Kind identifies what a Target refers to.
type Kind int

const (
	KindProjectType Kind = iota + 1
	KindFile
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindProjectType:
		return "project type"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Target is a resolved compilation target. Paths holds the project's
// directories in configured order, or the single file or directory path.
type Target struct {
	Kind  Kind
	Name  string
	Paths []string
}

// ProjectTypes is the lookup the resolver needs from the configuration.
type ProjectTypes interface {
	ProjectType(name string) ([]string, bool)
}

// Resolver turns input strings into targets.
type Resolver struct {
	projects ProjectTypes
	stat     func(string) (fs.FileInfo, error)
}

// New creates a resolver backed by the configured project types.
func New(projects ProjectTypes) *Resolver {
	return &Resolver{projects: projects, stat: os.Stat}
}

// Resolve maps input to a Target. Input is matched exactly as given, and
// project type names take precedence over paths with the same spelling.
func (r *Resolver) Resolve(input string) (Target, error) {
	if input == "" {
		return Target{}, fmt.Errorf("empty path %w", ErrPathNotFound)
	}

	if dirs, ok := r.projects.ProjectType(input); ok {
		return Target{Kind: KindProjectType, Name: input, Paths: dirs}, nil
	}

	info, err := r.stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Target{}, fmt.Errorf("%s %w", input, ErrPathNotFound)
		}
		return Target{}, fmt.Errorf("cannot access %s: %w", input, err)
	}

	switch mode := info.Mode(); {
	case mode.IsRegular():
		return Target{Kind: KindFile, Name: input, Paths: []string{input}}, nil
	case mode.IsDir():
		return Target{Kind: KindDirectory, Name: input, Paths: []string{input}}, nil
	default:
		return Target{}, fmt.Errorf("%s %w", input, ErrInvalidPathType)
	}
}
