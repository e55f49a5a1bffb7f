package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the configuration file at path and returns the validated,
	// immutable settings. Every failure wraps ErrInvalid.
	Load(ctx context.Context, path string) (*Settings, error)
}
