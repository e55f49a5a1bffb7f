package config

import "errors"

// ErrInvalid is wrapped by every error caused by a missing, unreadable or
// malformed configuration file.
var ErrInvalid = errors.New("configuration missing or invalid")
