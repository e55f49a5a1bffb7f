package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level shape of a configuration file.
type fileRoot struct {
	FileExtension   string              `hcl:"file_extension"`
	DoNotCompile    []string            `hcl:"do_not_compile,optional"`
	ProjectTypes    map[string][]string `hcl:"project_types,optional"`
	SourceExtension string              `hcl:"source_extension,optional"`
	BackupDir       string              `hcl:"backup_dir,optional"`
	Compiler        *compilerBlock      `hcl:"compiler,block"`
}

// compilerBlock is the optional `compiler { ... }` block. Args is kept as a
// raw expression so its templates can be evaluated once per file.
type compilerBlock struct {
	Command string         `hcl:"command"`
	Args    hcl.Expression `hcl:"args,optional"`
}
