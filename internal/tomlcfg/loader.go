// Package tomlcfg implements config.Loader for TOML configuration files.
package tomlcfg

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/specialistvlad/easycompile/internal/ctxlog"
)

// document mirrors the TOML layout of a configuration file.
type document struct {
	FileExtension   string              `toml:"file_extension"`
	DoNotCompile    []string            `toml:"do_not_compile"`
	ProjectTypes    map[string][]string `toml:"project_types"`
	SourceExtension string              `toml:"source_extension"`
	BackupDir       string              `toml:"backup_dir"`
	Compiler        *compilerTable      `toml:"compiler"`
}

type compilerTable struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Loader reads configuration from TOML files.
type Loader struct{}

// NewLoader creates a new TOML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes the TOML file at path. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func (l *Loader) Load(ctx context.Context, path string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path", path)

	var raw document
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %w", config.ErrInvalid, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", config.ErrInvalid, path, strings.Join(keys, ", "))
	}

	doc := config.Document{
		ProjectTypes:    raw.ProjectTypes,
		DoNotCompile:    raw.DoNotCompile,
		FileExtension:   raw.FileExtension,
		SourceExtension: raw.SourceExtension,
		BackupDir:       raw.BackupDir,
	}
	if raw.Compiler != nil {
		args, diags := parseTemplates(path, raw.Compiler.Args)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: invalid compiler args in %s: %w", config.ErrInvalid, path, diags)
		}
		doc.Compiler = &config.Compiler{Command: raw.Compiler.Command, Args: args}
	}

	settings, err := config.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("TOML loading complete.", "project_types", len(raw.ProjectTypes), "file_extension", settings.FileExtension())
	return settings, nil
}

// parseTemplates turns plain strings into HCL template expressions so that
// `${input}` and `${output}` behave the same as in HCL configuration.
func parseTemplates(filename string, args []string) ([]hcl.Expression, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	exprs := make([]hcl.Expression, 0, len(args))
	for _, a := range args {
		expr, d := hclsyntax.ParseTemplate([]byte(a), filename, hcl.InitialPos)
		diags = append(diags, d...)
		exprs = append(exprs, expr)
	}
	return exprs, diags
}
