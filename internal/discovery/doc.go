// Package discovery scans a project for files that carry a version string
// (package.json, Cargo.toml, VERSION, ...) so that bv can start tracking them
// without hand-written patterns.
package discovery
