// Package semver parses, formats, compares and bumps semantic versions of the
// form MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD].
package semver
