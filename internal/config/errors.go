package config

import "errors"

var (
	// ErrDuplicateModule is returned when adding a module whose name is taken.
	ErrDuplicateModule = errors.New("module already exists")

	// ErrModuleNotFound is returned when a named module does not exist.
	ErrModuleNotFound = errors.New("module not found")

	// ErrUnpairedPatterns is returned when only one of search/replace is set.
	ErrUnpairedPatterns = errors.New("search and replace patterns must be set together")

	// ErrFileExists is returned when a module already tracks the path.
	ErrFileExists = errors.New("file already tracked")

	// ErrMissingPattern is returned when a regex file has no pattern.
	ErrMissingPattern = errors.New("pattern is required for regex format")

	// ErrNoVersion is returned when a module has no version to work from.
	ErrNoVersion = errors.New("no version configured")
)
