package parser

import (
	"regexp"
	"strings"
)

const (
	// CurrentVersionPlaceholder expands to the quoted current version in search patterns.
	CurrentVersionPlaceholder = "{current_version}"

	// NewVersionPlaceholder expands to the new version in replace patterns.
	NewVersionPlaceholder = "{new_version}"
)

// ExpandSearch turns a search pattern into a regular expression. Every
// {current_version} becomes the regexp-quoted current version. An empty
// pattern matches the current version literally.
func ExpandSearch(pattern, current string) string {
	quoted := regexp.QuoteMeta(current)
	if pattern == "" {
		return quoted
	}
	return strings.ReplaceAll(pattern, CurrentVersionPlaceholder, quoted)
}

// ExpandReplace turns a replace pattern into a regexp replacement template.
// Every {new_version} becomes the new version with '$' escaped, so group
// references like ${1} in the pattern keep working. An empty pattern yields
// the new version.
func ExpandReplace(pattern, next string) string {
	escaped := strings.ReplaceAll(next, "$", "$$")
	if pattern == "" {
		return escaped
	}
	return strings.ReplaceAll(pattern, NewVersionPlaceholder, escaped)
}
