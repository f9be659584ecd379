package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/indaco/bv/internal/semver"
)

// SchemeSemantic is the persisted tag of the semantic versioning scheme.
const SchemeSemantic = "Semantic"

// VersionSpec is a tagged union over versioning schemes. At most one field is
// set. It is persisted as a single-key mapping whose key is the scheme tag:
//
//	version: { Semantic: "1.2.3" }
//
// New schemes are added as new fields with their own tag.
type VersionSpec struct {
	Semantic *semver.SemVersion
}

// Semantic wraps a semantic version in a VersionSpec.
func Semantic(v semver.SemVersion) VersionSpec {
	return VersionSpec{Semantic: &v}
}

// IsZero reports whether no scheme is set.
func (s VersionSpec) IsZero() bool {
	return s.Semantic == nil
}

// Scheme returns the tag of the set scheme, or "" when none is set.
func (s VersionSpec) Scheme() string {
	if s.Semantic != nil {
		return SchemeSemantic
	}
	return ""
}

// SemVer returns the semantic version, if that is the set scheme.
func (s VersionSpec) SemVer() (semver.SemVersion, bool) {
	if s.Semantic == nil {
		return semver.SemVersion{}, false
	}
	return *s.Semantic, true
}

func (s VersionSpec) String() string {
	if s.Semantic != nil {
		return s.Semantic.String()
	}
	return ""
}

// MarshalYAML emits the tagged mapping, or null when no scheme is set.
func (s VersionSpec) MarshalYAML() (any, error) {
	if s.Semantic == nil {
		return nil, nil
	}
	return map[string]string{SchemeSemantic: s.Semantic.String()}, nil
}

// UnmarshalYAML accepts exactly one known scheme tag. Null and {} decode to the
// zero VersionSpec.
func (s *VersionSpec) UnmarshalYAML(unmarshal func(any) error) error {
	var raw map[string]string
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("version: %w", err)
	}

	*s = VersionSpec{}
	switch len(raw) {
	case 0:
		return nil
	case 1:
	default:
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("version: expected exactly one scheme, got %s", strings.Join(keys, ", "))
	}

	for tag, value := range raw {
		switch tag {
		case SchemeSemantic:
			v, err := semver.ParseVersion(value)
			if err != nil {
				return fmt.Errorf("version: %w", err)
			}
			s.Semantic = &v
		default:
			return fmt.Errorf("version: unknown scheme %q", tag)
		}
	}
	return nil
}
