// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface implemented by each supported
// file format.
//
// A Document is what a loader decodes from disk. Build validates it, applies
// defaults and freezes it into Settings, which is the single read-only source
// of truth for the resolver and the compilation pipeline.
package config
