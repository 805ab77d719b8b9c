// Package configs provides embedded configuration files for smartformat.
package configs

import _ "embed"

// Defaults holds the built-in application settings, overridden by the user's config.yaml.
//
//go:embed defaults.yaml
var Defaults []byte
