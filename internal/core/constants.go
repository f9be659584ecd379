package core

import (
	"os"
	"time"
)

// FileMode is re-exported so callers do not need to import os for permissions.
type FileMode = os.FileMode

const (
	// PermOwnerRW is used for files bv writes (config and tracked files).
	PermOwnerRW FileMode = 0o600

	// PermDirDefault is used when bv has to create a directory.
	PermDirDefault FileMode = 0o755
)

const (
	// MaxDiscoveryDepth bounds how deep auto-add walks the project tree.
	MaxDiscoveryDepth = 3

	// TimeoutGit bounds a single git invocation.
	TimeoutGit = 30 * time.Second
)
