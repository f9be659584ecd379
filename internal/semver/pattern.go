package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSerializeTemplate renders a version in canonical form.
const DefaultSerializeTemplate = "{major}.{minor}.{patch}{-prerelease}{+build}"

// ParseWithPattern extracts a version using a regular expression with named
// groups "major", "minor" and "patch", and optionally "prerelease" and "build".
// The result must satisfy Validate. An empty pattern falls back to ParseVersion.
func ParseWithPattern(pattern, s string) (SemVersion, error) {
	if pattern == "" {
		return ParseVersion(s)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return SemVersion{}, fmt.Errorf("invalid parse pattern %q: %w", pattern, err)
	}
	for _, required := range []string{"major", "minor", "patch"} {
		if re.SubexpIndex(required) < 0 {
			return SemVersion{}, fmt.Errorf("parse pattern %q lacks the named group %q", pattern, required)
		}
	}

	m := re.FindStringSubmatch(s)
	if m == nil {
		return SemVersion{}, &ParseError{Input: s, Reason: fmt.Sprintf("does not match pattern %q", pattern)}
	}

	group := func(name string) string {
		if i := re.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}

	var v SemVersion
	for _, c := range []struct {
		name string
		dst  *uint64
	}{
		{"major", &v.Major},
		{"minor", &v.Minor},
		{"patch", &v.Patch},
	} {
		n, err := strconv.ParseUint(group(c.name), 10, 64)
		if err != nil {
			return SemVersion{}, &ParseError{Input: s, Reason: "invalid " + c.name + " version", Err: err}
		}
		*c.dst = n
	}
	v.PreRelease = group("prerelease")
	v.Build = group("build")
	if err := v.Validate(); err != nil {
		return SemVersion{}, err
	}
	return v, nil
}

// Serialize renders v using a template. Supported placeholders:
//
//	{major} {minor} {patch} {prerelease} {build}
//	{-prerelease} {+build}  (emit the separator only when the part is set)
//	{version}               (canonical form)
//
// An empty template yields the canonical form.
func Serialize(template string, v SemVersion) string {
	if template == "" {
		return v.String()
	}

	pre, build := "", ""
	if v.PreRelease != "" {
		pre = "-" + v.PreRelease
	}
	if v.Build != "" {
		build = "+" + v.Build
	}

	r := strings.NewReplacer(
		"{version}", v.String(),
		"{major}", strconv.FormatUint(v.Major, 10),
		"{minor}", strconv.FormatUint(v.Minor, 10),
		"{patch}", strconv.FormatUint(v.Patch, 10),
		"{-prerelease}", pre,
		"{+build}", build,
		"{prerelease}", v.PreRelease,
		"{build}", v.Build,
	)
	return r.Replace(template)
}
