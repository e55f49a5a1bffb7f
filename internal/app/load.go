package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/specialistvlad/easycompile/internal/ctxlog"
	"github.com/specialistvlad/easycompile/internal/hcl"
	"github.com/specialistvlad/easycompile/internal/tomlcfg"
)

// fallbackConfigPaths are tried in order when the default file is absent.
var fallbackConfigPaths = []string{"config.json", "config.toml"}

// loaderFor picks the config.Loader matching the file extension.
func loaderFor(path string) config.Loader {
	switch filepath.Ext(path) {
	case ".toml":
		return tomlcfg.NewLoader()
	default:
		return hcl.NewLoader()
	}
}

// locateConfig returns the configuration file to load. Only an implicit
// default path may be replaced by one of the fallbacks.
func locateConfig(path string, explicit bool) string {
	if explicit {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	dir := filepath.Dir(path)
	for _, name := range fallbackConfigPaths {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// loadSettings reads the configuration once. Every failure wraps
// config.ErrInvalid.
func loadSettings(ctx context.Context, path string, explicit bool) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)

	path = locateConfig(path, explicit)
	logger.Debug("Loading configuration...", "path", path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", config.ErrInvalid, path)
		}
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	settings, err := loaderFor(path).Load(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Info("Configuration loaded.", "path", path, "project_types", settings.ProjectTypeNames())
	return settings, nil
}
