// Package config loads, validates, and normalizes the UFM configuration
// file. Configuration lives at ~/.config/ufm/config.toml by default, with
// a project-local ufm.toml honored as a fallback for development.
package config
