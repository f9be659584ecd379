package semver

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SemVersion represents a semantic version (major.minor.patch-preRelease+build).
//
// Components are unsigned 64-bit integers. Build metadata is carried through
// parsing and formatting but ignored by Compare.
type SemVersion struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	PreRelease string
	Build      string
}

// ErrMalformedVersion is matched (via errors.Is) by every error ParseVersion returns.
var ErrMalformedVersion = errors.New("malformed version")

// ParseError describes why a version string was rejected.
type ParseError struct {
	Input  string
	Reason string
	// Err is the underlying numeric parse error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %s: %v", ErrMalformedVersion, e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %q: %s", ErrMalformedVersion, e.Input, e.Reason)
}

// Is reports ErrMalformedVersion as a match so callers need not know the concrete type.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedVersion
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// String returns the string representation of the semantic version.
func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.FormatUint(v.Major, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.Minor, 10))
	sb.WriteByte('.')
	sb.WriteString(strconv.FormatUint(v.Patch, 10))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// Validate reports whether v can be written with String and read back by
// ParseVersion unchanged. The pre-release must not contain '-' or '+', and
// the build metadata must not contain '+'.
func (v SemVersion) Validate() error {
	if strings.ContainsAny(v.PreRelease, "-+") {
		return &ParseError{Input: v.String(), Reason: fmt.Sprintf("pre-release %q must not contain '-' or '+'", v.PreRelease)}
	}
	if strings.Contains(v.Build, "+") {
		return &ParseError{Input: v.String(), Reason: fmt.Sprintf("build metadata %q must not contain '+'", v.Build)}
	}
	return nil
}

// IsPreRelease reports whether the version carries a pre-release label.
func (v SemVersion) IsPreRelease() bool {
	return v.PreRelease != ""
}

// ParseVersion parses MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD].
//
// The input is split on the first '+' (build), then the remainder on the first
// '-' (pre-release). A second '+' anywhere, or a second '-' before the build
// part, is rejected. Hyphens inside the build part are allowed.
//
// Numeric components are parsed as unsigned decimal integers: signs, spaces
// and non-digit characters are rejected.
func ParseVersion(s string) (SemVersion, error) {
	rest, build, hasBuild := strings.Cut(s, "+")
	if hasBuild {
		if strings.Contains(build, "+") {
			return SemVersion{}, &ParseError{Input: s, Reason: "too many '+' symbols"}
		}
		if build == "" {
			return SemVersion{}, &ParseError{Input: s, Reason: "empty build metadata"}
		}
	}

	numeric, pre, hasPre := strings.Cut(rest, "-")
	if hasPre {
		if strings.Contains(pre, "-") {
			return SemVersion{}, &ParseError{Input: s, Reason: "too many '-' symbols"}
		}
		if pre == "" {
			return SemVersion{}, &ParseError{Input: s, Reason: "empty pre-release"}
		}
	}

	parts := strings.Split(numeric, ".")
	if len(parts) != 3 {
		return SemVersion{}, &ParseError{Input: s, Reason: "expected MAJOR.MINOR.PATCH"}
	}

	var nums [3]uint64
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.ParseUint(parts[i], 10, 64)
		if err != nil {
			return SemVersion{}, &ParseError{Input: s, Reason: "invalid " + name + " version", Err: err}
		}
		nums[i] = n
	}

	return SemVersion{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		PreRelease: pre,
		Build:      build,
	}, nil
}

// MustParse is like ParseVersion but panics on error. Intended for constants and tests.
func MustParse(s string) SemVersion {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare compares two semantic versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
// Pre-release versions have lower precedence than the associated normal version
// (e.g., 1.0.0-alpha < 1.0.0). Build metadata is ignored for comparison purposes.
func (v SemVersion) Compare(other SemVersion) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

// Less reports whether v has lower precedence than other.
func (v SemVersion) Less(other SemVersion) bool {
	return v.Compare(other) < 0
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	n := min(len(aIDs), len(bIDs))
	for i := range n {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	// Equal so far: the shorter list has lower precedence.
	return cmp.Compare(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aNum, aIsNum := parseNumericIdentifier(a)
	bNum, bIsNum := parseNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		return cmp.Compare(aNum, bNum)
	case aIsNum:
		return -1 // numeric < non-numeric
	case bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SemVer numeric identifiers: only digits, no leading zeros unless exactly "0".
func parseNumericIdentifier(s string) (uint64, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') || !isAllDigits(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isAllDigits returns true if s consists entirely of ASCII digits.
func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
