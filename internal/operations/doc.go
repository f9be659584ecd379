// Package operations implements the version bump across every file a module
// tracks.
package operations
