package git

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/logging"
	"github.com/indaco/bv/internal/semver"
)

// Default templates for the commit and tag a release produces.
const (
	DefaultMessage    = "Bump version: {current_version} → {new_version}"
	DefaultTagName    = "v{new_version}"
	DefaultTagMessage = DefaultMessage
)

var (
	// ErrNotRepository is returned when a commit or tag is requested outside a git work tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrTagExists is returned when the release tag is already taken.
	ErrTagExists = errors.New("tag already exists")
)

// ReleaseOptions selects what a release records. Empty templates fall back to
// the package defaults.
type ReleaseOptions struct {
	Commit  bool
	Message string

	Tag         bool
	TagName     string
	TagMessage  string
	Lightweight bool
}

// Enabled reports whether the options ask for any git action.
func (o ReleaseOptions) Enabled() bool {
	return o.Commit || o.Tag
}

// Release describes what Releaser did (or would do).
type Release struct {
	Message    string
	TagName    string
	TagMessage string
	Committed  bool
	Tagged     bool
}

// Releaser records a version change as a git commit and/or tag.
type Releaser struct {
	commits core.GitCommitOperations
	tags    core.GitTagOperations
	diag    logging.Diagnostics
}

// NewReleaser creates a Releaser over the given git operations.
func NewReleaser(commits core.GitCommitOperations, tags core.GitTagOperations, diag logging.Diagnostics) *Releaser {
	if diag == nil {
		diag = logging.Discard()
	}
	return &Releaser{commits: commits, tags: tags, diag: diag}
}

// Plan renders the commit message and tag for a change from current to next
// without touching the repository.
func (r *Releaser) Plan(current, next semver.SemVersion, opts ReleaseOptions) Release {
	rel := Release{}
	if opts.Commit {
		rel.Message = FormatTemplate(orDefault(opts.Message, DefaultMessage), current, next)
	}
	if opts.Tag {
		rel.TagName = FormatTemplate(orDefault(opts.TagName, DefaultTagName), current, next)
		if !opts.Lightweight {
			rel.TagMessage = FormatTemplate(orDefault(opts.TagMessage, DefaultTagMessage), current, next)
		}
	}
	return rel
}

// Release stages files, commits and tags according to opts. The tag is
// checked before anything is committed so an existing tag leaves the
// repository untouched.
func (r *Releaser) Release(files []string, current, next semver.SemVersion, opts ReleaseOptions) (Release, error) {
	rel := r.Plan(current, next, opts)
	if !opts.Enabled() {
		return rel, nil
	}

	if !r.commits.IsRepository() {
		return rel, ErrNotRepository
	}

	if opts.Tag {
		exists, err := r.tags.TagExists(rel.TagName)
		if err != nil {
			return rel, err
		}
		if exists {
			return rel, fmt.Errorf("%w: %s", ErrTagExists, rel.TagName)
		}
	}

	if opts.Commit {
		if err := r.commits.StageFiles(files...); err != nil {
			return rel, fmt.Errorf("failed to stage files: %w", err)
		}
		if err := r.commits.Commit(rel.Message); err != nil {
			return rel, fmt.Errorf("failed to commit: %w", err)
		}
		rel.Committed = true
		r.diag.Debug("committed version bump", "files", len(files), "message", rel.Message)
	}

	if opts.Tag {
		var err error
		if opts.Lightweight {
			err = r.tags.CreateLightweightTag(rel.TagName)
		} else {
			err = r.tags.CreateAnnotatedTag(rel.TagName, rel.TagMessage)
		}
		if err != nil {
			return rel, fmt.Errorf("failed to create tag %s: %w", rel.TagName, err)
		}
		rel.Tagged = true
		r.diag.Debug("created tag", "tag", rel.TagName)
	}

	return rel, nil
}

// FormatTemplate expands release placeholders. {major}, {minor}, {patch},
// {prerelease} and {build} refer to the new version.
func FormatTemplate(tmpl string, current, next semver.SemVersion) string {
	return strings.NewReplacer(
		"{current_version}", current.String(),
		"{new_version}", next.String(),
		"{major}", strconv.FormatUint(next.Major, 10),
		"{minor}", strconv.FormatUint(next.Minor, 10),
		"{patch}", strconv.FormatUint(next.Patch, 10),
		"{prerelease}", next.PreRelease,
		"{build}", next.Build,
	).Replace(tmpl)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
