package compiler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/specialistvlad/easycompile/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// bytenodeScript compiles process.argv[1] into process.argv[2].
const bytenodeScript = `require('bytenode').compileFile({filename: process.argv[1], output: process.argv[2]})`

// DefaultCommand is used when the configuration has no compiler block.
func DefaultCommand() *config.Compiler {
	return &config.Compiler{
		Command: "node",
		Args:    mustTemplates("-e", bytenodeScript, "${input}", "${output}"),
	}
}

// Command runs an external program once per file.
type Command struct {
	name string
	args []hcl.Expression
}

// NewCommand prepares a command-backed compiler. A nil spec selects
// DefaultCommand. Argument templates are checked up front so a bad template
// is reported at startup rather than on the first file.
func NewCommand(spec *config.Compiler) (*Command, error) {
	if spec == nil {
		spec = DefaultCommand()
	}
	c := &Command{name: spec.Command, args: spec.Args}
	if _, err := c.render("input.js", "output.jsc"); err != nil {
		return nil, fmt.Errorf("%w: compiler args: %w", config.ErrInvalid, err)
	}
	return c, nil
}

// Compile runs the command and verifies that the artifact exists afterwards.
func (c *Command) Compile(ctx context.Context, sourcePath, outputPath string) error {
	logger := ctxlog.FromContext(ctx)

	args, err := c.render(sourcePath, outputPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCompile, sourcePath, err)
	}
	logger.Debug("Running compiler.", "command", c.name, "args", args)

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, c.name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("%w: %s: %w: %s", ErrCompile, sourcePath, err, msg)
		}
		return fmt.Errorf("%w: %s: %w", ErrCompile, sourcePath, err)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return fmt.Errorf("%w: %s: no artifact at %s", ErrCompile, sourcePath, outputPath)
	}
	return nil
}

// render evaluates the argument templates for one file.
func (c *Command) render(sourcePath, outputPath string) ([]string, error) {
	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{
		"input":  cty.StringVal(sourcePath),
		"output": cty.StringVal(outputPath),
	}}

	args := make([]string, 0, len(c.args))
	for _, expr := range c.args {
		v, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("argument at %s: %w", expr.Range(), err)
		}
		if v.IsNull() || !v.IsKnown() {
			return nil, fmt.Errorf("argument at %s has no value", expr.Range())
		}
		args = append(args, v.AsString())
	}
	return args, nil
}

func mustTemplates(srcs ...string) []hcl.Expression {
	exprs := make([]hcl.Expression, 0, len(srcs))
	for _, s := range srcs {
		expr, diags := hclsyntax.ParseTemplate([]byte(s), "<default>", hcl.InitialPos)
		if diags.HasErrors() {
			panic(diags)
		}
		exprs = append(exprs, expr)
	}
	return exprs
}
