package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/specialistvlad/easycompile/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses a single configuration file, picking the HCL native or JSON
// parser by extension, and builds the validated settings from it.
func (l *Loader) Load(ctx context.Context, path string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	switch filepath.Ext(path) {
	case ".json":
		file, diags = parser.ParseJSONFile(path)
	default:
		file, diags = parser.ParseHCLFile(path)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", config.ErrInvalid, path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", config.ErrInvalid, path, diags)
	}

	doc, diags := translate(&root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: invalid compiler block in %s: %w", config.ErrInvalid, path, diags)
	}

	settings, err := config.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("HCL loading complete.",
		"project_types", len(doc.ProjectTypes),
		"do_not_compile", len(doc.DoNotCompile),
		"file_extension", settings.FileExtension(),
	)
	return settings, nil
}
