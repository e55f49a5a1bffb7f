// Package compiler abstracts the external bytecode compiler. The pipeline
// only sees the Compiler interface; the default implementation shells out to
// a configurable command.
package compiler

import (
	"context"
	"errors"
)

// ErrCompile is wrapped by every failure to produce a compiled artifact.
var ErrCompile = errors.New("compile failed")

// Compiler turns the source file at sourcePath into a compiled artifact at
// outputPath. It returns nil only if the artifact was produced.
type Compiler interface {
	Compile(ctx context.Context, sourcePath, outputPath string) error
}

// Func adapts a plain function to the Compiler interface.
type Func func(ctx context.Context, sourcePath, outputPath string) error

// Compile calls f.
func (f Func) Compile(ctx context.Context, sourcePath, outputPath string) error {
	return f(ctx, sourcePath, outputPath)
}
