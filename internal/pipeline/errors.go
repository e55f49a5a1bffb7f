package pipeline

import (
	"errors"
	"fmt"
)

// Step names the stage of the per-file sequence that failed.
type Step string

const (
	StepList    Step = "list"
	StepRead    Step = "read"
	StepBackup  Step = "backup"
	StepCompile Step = "compile"
	StepDelete  Step = "delete"
)

// FileError records the failure of one file (or, for StepList, one directory).
type FileError struct {
	Path string
	Step Step
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Summary is the outcome of one pipeline run.
type Summary struct {
	Compiled int
	Failures []*FileError
}

// Err joins all recorded failures, or returns nil if there were none.
func (s *Summary) Err() error {
	errs := make([]error, 0, len(s.Failures))
	for _, f := range s.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
