package core

import (
	"context"
	"os"
)

// FileSystem abstracts the file operations bv performs so that commands and
// services can be exercised against an in-memory implementation.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)
}

// Marshaler serializes a value into its persisted representation.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// GitCommitOperations covers the git commands needed to record a bump.
type GitCommitOperations interface {
	IsRepository() bool
	StageFiles(files ...string) error
	Commit(message string) error
}

// GitTagOperations covers the git commands needed to tag a release.
type GitTagOperations interface {
	TagExists(name string) (bool, error)
	CreateAnnotatedTag(name, message string) error
	CreateLightweightTag(name string) error
}
