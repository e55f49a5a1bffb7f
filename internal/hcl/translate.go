package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/easycompile/internal/config"
)

// translate converts the HCL-specific schema into the agnostic document.
func translate(root *fileRoot) (config.Document, hcl.Diagnostics) {
	doc := config.Document{
		ProjectTypes:    root.ProjectTypes,
		DoNotCompile:    root.DoNotCompile,
		FileExtension:   root.FileExtension,
		SourceExtension: root.SourceExtension,
		BackupDir:       root.BackupDir,
	}
	if root.Compiler == nil {
		return doc, nil
	}

	args, diags := argExpressions(root.Compiler.Args)
	if diags.HasErrors() {
		return doc, diags
	}
	doc.Compiler = &config.Compiler{
		Command: root.Compiler.Command,
		Args:    args,
	}
	return doc, nil
}

// argExpressions splits a list expression into its elements without
// evaluating them. A missing attribute arrives from gohcl as a static null.
func argExpressions(expr hcl.Expression) ([]hcl.Expression, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}
	// Templates referencing variables fail here, which is fine: only a
	// static null means "absent".
	if v, diags := expr.Value(nil); !diags.HasErrors() && v.IsNull() {
		return nil, nil
	}
	return hcl.ExprList(expr)
}
