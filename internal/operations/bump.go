package operations

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/indaco/bv/internal/config"
	"github.com/indaco/bv/internal/core"
	"github.com/indaco/bv/internal/logging"
	"github.com/indaco/bv/internal/parser"
	"github.com/indaco/bv/internal/semver"
)

var (
	// ErrSameVersion is returned when the computed version equals the current
	// one. Execute only returns it when every selected module is unchanged.
	ErrSameVersion = errors.New("new version equals current version")

	// ErrSharedFile is returned when two bumped modules track the same file.
	ErrSharedFile = errors.New("file tracked by more than one module")
)

// BumpOptions describes how the next version is computed and rendered.
type BumpOptions struct {
	// Kind selects the component to increment. Ignored when NewVersion is set.
	Kind semver.BumpKind

	// NewVersion sets the next version explicitly. It is read with ParsePattern.
	NewVersion string

	// PreRelease is the label for BumpPre, or the pre-release to attach for
	// the other kinds.
	PreRelease string

	// Metadata is attached as build metadata.
	Metadata string

	// ParsePattern is a regexp with named groups used to read NewVersion.
	ParsePattern string

	// SerializeTemplate renders versions as they appear inside files.
	SerializeTemplate string

	DryRun bool
}

// FileChange is the rewrite of one tracked file.
type FileChange struct {
	Path string
	From string
	To   string
	// Matches is the number of search pattern matches; 0 for structured files.
	Matches int
}

// ModuleResult is the outcome of bumping one module.
type ModuleResult struct {
	Name  string
	From  semver.SemVersion
	To    semver.SemVersion
	Files []FileChange
	// Skipped is set when the module already carries the next version.
	// Its files and stored version are left alone.
	Skipped bool
}

// BumpOperation bumps modules of a config and rewrites their files.
type BumpOperation struct {
	fs      core.FileSystem
	writer  *parser.Writer
	rootDir string
	opts    BumpOptions
	diag    logging.Diagnostics
}

// NewBumpOperation creates a bump operation. Relative file paths are resolved
// against rootDir.
func NewBumpOperation(fs core.FileSystem, rootDir string, opts BumpOptions, diag logging.Diagnostics) *BumpOperation {
	if diag == nil {
		diag = logging.Discard()
	}
	return &BumpOperation{
		fs:      fs,
		writer:  parser.NewWriter(fs),
		rootDir: rootDir,
		opts:    opts,
		diag:    diag,
	}
}

// Name returns the name of this operation.
func (op *BumpOperation) Name() string {
	if op.opts.NewVersion != "" {
		return "set " + op.opts.NewVersion
	}
	return fmt.Sprintf("bump %s", op.opts.Kind)
}

// NextVersion computes the version that follows current.
func (op *BumpOperation) NextVersion(current semver.SemVersion) (semver.SemVersion, error) {
	var (
		next semver.SemVersion
		err  error
	)

	switch {
	case op.opts.NewVersion != "":
		next, err = semver.ParseWithPattern(op.opts.ParsePattern, op.opts.NewVersion)
		if err != nil {
			return semver.SemVersion{}, fmt.Errorf("new version: %w", err)
		}
	case op.opts.Kind == semver.BumpPre:
		next, err = current.BumpPreRelease(op.opts.PreRelease)
		if err != nil {
			return semver.SemVersion{}, err
		}
	default:
		next, err = current.Bump(op.opts.Kind)
		if err != nil {
			return semver.SemVersion{}, err
		}
		if op.opts.PreRelease != "" {
			next.PreRelease = op.opts.PreRelease
		}
	}

	if op.opts.Metadata != "" {
		next.Build = op.opts.Metadata
	}
	if err := next.Validate(); err != nil {
		return semver.SemVersion{}, err
	}

	if next.String() == current.String() {
		return semver.SemVersion{}, fmt.Errorf("%w: %s", ErrSameVersion, current)
	}
	return next, nil
}

// pendingWrite is a rendered file waiting to be written.
type pendingWrite struct {
	path string
	data []byte
}

// Execute bumps the named module, or every module when name is empty. All
// files are rendered before any is written, so a failure leaves the files
// and the store unchanged. A module that already carries its next version is
// reported as skipped; ErrSameVersion is returned only when every module is
// skipped. With DryRun nothing is written and the store is not modified.
func (op *BumpOperation) Execute(ctx context.Context, cfg *config.Config, name string) ([]ModuleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets, err := selectModules(cfg, name)
	if err != nil {
		return nil, err
	}
	if err := op.checkSharedFiles(targets); err != nil {
		return nil, err
	}

	results := make([]ModuleResult, 0, len(targets))
	var (
		writes  []pendingWrite
		sameErr error
		bumped  int
	)

	for i, m := range targets {
		label := m.DisplayName(i)

		current, err := m.Version()
		if err != nil {
			return nil, err
		}
		next, err := op.NextVersion(current)
		if errors.Is(err, ErrSameVersion) {
			op.diag.Debug("module already at target version", "module", label, "version", current)
			results = append(results, ModuleResult{Name: label, From: current, To: current, Skipped: true})
			sameErr = fmt.Errorf("module %s: %w", label, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", label, err)
		}

		res := ModuleResult{Name: label, From: current, To: next}
		for _, f := range m.Files {
			change, data, err := op.renderFile(ctx, f, current, next)
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", label, err)
			}
			res.Files = append(res.Files, change)
			writes = append(writes, pendingWrite{path: op.resolve(f.Path), data: data})
		}
		results = append(results, res)
		bumped++
	}

	if bumped == 0 {
		return nil, sameErr
	}

	if op.opts.DryRun {
		op.diag.Debug("dry run, nothing written", "modules", bumped, "files", len(writes))
		return results, nil
	}

	for _, w := range writes {
		if err := op.writer.WriteFile(ctx, w.path, w.data); err != nil {
			return nil, err
		}
	}
	for i, m := range targets {
		if !results[i].Skipped {
			m.SetVersion(results[i].To)
		}
	}

	op.diag.Debug("bump applied", "modules", bumped, "files", len(writes))
	return results, nil
}

// checkSharedFiles rejects targets where two modules would rewrite the same
// file, since each render starts from the contents on disk.
func (op *BumpOperation) checkSharedFiles(targets []*config.ModuleConfig) error {
	owners := make(map[string]string)
	for i, m := range targets {
		label := m.DisplayName(i)
		for _, f := range m.Files {
			path := op.resolve(f.Path)
			if owner, ok := owners[path]; ok && owner != label {
				return fmt.Errorf("%w: %s (modules %s and %s)", ErrSharedFile, f.Path, owner, label)
			}
			owners[path] = label
		}
	}
	return nil
}

// renderFile computes the new contents of f.
func (op *BumpOperation) renderFile(ctx context.Context, f config.ModuleFile, moduleCurrent, next semver.SemVersion) (FileChange, []byte, error) {
	current := moduleCurrent
	if v, ok := f.Version.SemVer(); ok {
		current = v
	}

	from := semver.Serialize(op.opts.SerializeTemplate, current)
	to := semver.Serialize(op.opts.SerializeTemplate, next)
	change := FileChange{Path: f.Path, From: from, To: to}
	path := op.resolve(f.Path)

	if f.IsStructured() {
		pc := f.ParserConfig()
		pc.Path = path
		data, err := op.writer.Render(ctx, pc, to)
		return change, data, err
	}

	data, n, err := op.writer.RenderReplace(ctx, path, f.SearchPattern, f.ReplacePattern, from, to)
	change.Matches = n
	return change, data, err
}

func (op *BumpOperation) resolve(path string) string {
	if filepath.IsAbs(path) || op.rootDir == "" {
		return path
	}
	return filepath.Join(op.rootDir, path)
}

// selectModules returns pointers into cfg for the modules to bump.
func selectModules(cfg *config.Config, name string) ([]*config.ModuleConfig, error) {
	if !cfg.HasModules() || len(cfg.ModuleList()) == 0 {
		return nil, fmt.Errorf("no modules configured; add one with 'bv add'")
	}

	if name != "" {
		m, ok := cfg.Module(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", config.ErrModuleNotFound, name)
		}
		return []*config.ModuleConfig{m}, nil
	}

	mods := *cfg.Modules
	out := make([]*config.ModuleConfig, len(mods))
	for i := range mods {
		out[i] = &mods[i]
	}
	return out, nil
}

// ChangedPaths lists every file path the results touched.
func ChangedPaths(results []ModuleResult) []string {
	var paths []string
	for _, r := range results {
		if r.Skipped {
			continue
		}
		for _, f := range r.Files {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// FirstBumped returns the first result that was not skipped.
func FirstBumped(results []ModuleResult) (ModuleResult, bool) {
	for _, r := range results {
		if !r.Skipped {
			return r, true
		}
	}
	return ModuleResult{}, false
}
