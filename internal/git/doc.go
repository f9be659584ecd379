// Package git runs the git commands bv needs to record a version bump: staging
// and committing the rewritten files and tagging the release.
package git
