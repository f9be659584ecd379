package discovery

import (
	"sort"

	"github.com/indaco/bv/internal/config"
)

// DetectMismatches flags every candidate whose version differs from the
// result's primary (highest) version.
func DetectMismatches(result *Result) []Mismatch {
	expected := result.PrimaryVersion()
	if expected == "" {
		return nil
	}

	var mismatches []Mismatch
	for _, c := range result.Candidates {
		if c.Version != expected {
			mismatches = append(mismatches, Mismatch{
				Source:          c.RelPath,
				ExpectedVersion: expected,
				ActualVersion:   c.Version,
			})
		}
	}

	sort.Slice(mismatches, func(i, j int) bool {
		return mismatches[i].Source < mismatches[j].Source
	})
	return mismatches
}

// UniqueVersions returns the sorted distinct versions found in the result.
func UniqueVersions(result *Result) []string {
	if result == nil {
		return nil
	}

	set := make(map[string]struct{})
	for _, c := range result.Candidates {
		set[c.Version] = struct{}{}
	}

	versions := make([]string, 0, len(set))
	for v := range set {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// IsVersionConsistent returns true if all discovered sources have the same version.
func IsVersionConsistent(result *Result) bool {
	return len(UniqueVersions(result)) <= 1
}

// Untracked returns the candidates that no module in cfg tracks yet.
func Untracked(result *Result, cfg *config.Config) []Candidate {
	if result == nil {
		return nil
	}

	tracked := make(map[string]bool)
	for _, m := range cfg.ModuleList() {
		for _, f := range m.Files {
			tracked[f.Path] = true
		}
	}

	out := make([]Candidate, 0, len(result.Candidates))
	for _, c := range result.Candidates {
		if !tracked[c.RelPath] && !tracked[c.Path] {
			out = append(out, c)
		}
	}
	return out
}
