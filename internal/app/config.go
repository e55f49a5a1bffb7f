package app

import (
	"errors"
	"time"
)

// DefaultConfigPath is used when no configuration file is named explicitly.
const DefaultConfigPath = "config.hcl"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Target    string // project type, file or directory
	HasTarget bool

	ConfigPath     string
	ConfigExplicit bool // a missing explicit file is never substituted

	BackupDir     string // overrides the configured backup directory
	FailFast      bool
	ReportDelay   time.Duration
	NoInteractive bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.ReportDelay < 0 {
		return nil, errors.New("report delay must not be negative")
	}
	return &cfg, nil
}
