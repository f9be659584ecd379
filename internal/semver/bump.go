package semver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BumpKind names a version component to increment.
type BumpKind string

const (
	BumpMajor   BumpKind = "major"
	BumpMinor   BumpKind = "minor"
	BumpPatch   BumpKind = "patch"
	BumpRelease BumpKind = "release"
	BumpPre     BumpKind = "pre"
)

// ParseBumpKind validates a user-supplied bump kind.
func ParseBumpKind(s string) (BumpKind, error) {
	switch k := BumpKind(strings.ToLower(s)); k {
	case BumpMajor, BumpMinor, BumpPatch, BumpRelease, BumpPre:
		return k, nil
	default:
		return "", fmt.Errorf("invalid bump kind %q (expected major, minor, patch, release or pre)", s)
	}
}

// Bump returns the next version for the given kind. Pre-release and build are
// dropped; use BumpPreRelease for pre-release increments.
//
//   - "patch": 1.2.3 -> 1.2.4
//   - "minor": 1.2.3 -> 1.3.0
//   - "major": 1.2.3 -> 2.0.0
//   - "release": 1.2.3-rc.1 -> 1.2.3
func (v SemVersion) Bump(kind BumpKind) (SemVersion, error) {
	switch kind {
	case BumpPatch:
		if v.Patch == math.MaxUint64 {
			return SemVersion{}, errOverflow("patch")
		}
		return SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	case BumpMinor:
		if v.Minor == math.MaxUint64 {
			return SemVersion{}, errOverflow("minor")
		}
		return SemVersion{Major: v.Major, Minor: v.Minor + 1}, nil
	case BumpMajor:
		if v.Major == math.MaxUint64 {
			return SemVersion{}, errOverflow("major")
		}
		return SemVersion{Major: v.Major + 1}, nil
	case BumpRelease:
		return SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch}, nil
	case BumpPre:
		return v.BumpPreRelease("")
	default:
		return SemVersion{}, fmt.Errorf("invalid bump kind: %s", kind)
	}
}

// BumpPreRelease increments the pre-release counter.
//
// With an empty label the existing label's base is reused ("rc.1" -> "rc.2").
// With a new label the counter restarts ("beta.3" + "rc" -> "rc.1"). A release
// version gets a patch bump first so the result sorts above it
// (1.2.3 + "rc" -> 1.2.4-rc.1).
func (v SemVersion) BumpPreRelease(label string) (SemVersion, error) {
	if label == "" {
		if v.PreRelease == "" {
			return SemVersion{}, fmt.Errorf("version %s has no pre-release; a label is required", v)
		}
		label = PreReleaseBase(v.PreRelease)
	}
	if strings.ContainsAny(label, "+-") {
		return SemVersion{}, fmt.Errorf("invalid pre-release label %q", label)
	}

	next := SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	if v.PreRelease == "" {
		bumped, err := v.Bump(BumpPatch)
		if err != nil {
			return SemVersion{}, err
		}
		next = bumped
	}
	next.PreRelease = IncrementPreRelease(v.PreRelease, label)
	return next, nil
}

// IncrementPreRelease increments the numeric suffix of a pre-release label.
// Preserves the original separator style:
// - "rc.1" -> "rc.2" (dot separator)
// - "rc1" -> "rc2" (no separator)
// - "rc" -> "rc.1" (no number, defaults to dot)
// If current doesn't start with base, returns base.1.
func IncrementPreRelease(current, base string) string {
	suffix, ok := strings.CutPrefix(current, base)
	if !ok || suffix == "" {
		return base + ".1"
	}

	sep := ""
	numStr := suffix
	if suffix[0] == '.' {
		sep = "."
		numStr = suffix[1:]
	}

	if !isAllDigits(numStr) {
		return base + ".1"
	}
	n, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil || n == math.MaxUint64 {
		return base + ".1"
	}

	return base + sep + strconv.FormatUint(n+1, 10)
}

// PreReleaseBase extracts the base label from a pre-release string.
// e.g., "rc.1" -> "rc", "beta.2" -> "beta", "alpha" -> "alpha", "rc1" -> "rc"
func PreReleaseBase(pre string) string {
	if i := strings.LastIndexByte(pre, '.'); i >= 0 && isAllDigits(pre[i+1:]) {
		return pre[:i]
	}

	end := len(pre)
	for end > 0 && pre[end-1] >= '0' && pre[end-1] <= '9' {
		end--
	}
	if end > 0 && end < len(pre) {
		return pre[:end]
	}
	return pre
}

func errOverflow(component string) error {
	return fmt.Errorf("cannot bump %s: component would overflow", component)
}
