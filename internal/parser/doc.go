// Package parser reads and rewrites version strings inside tracked files.
// Structured manifests (JSON, YAML, TOML) are edited field-wise; everything
// else goes through search/replace patterns.
package parser
