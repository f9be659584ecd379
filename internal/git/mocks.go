package git

import "github.com/indaco/bv/internal/core"

// MockGitOperations is a mock implementation of the core git interfaces for testing.
// Unset functions succeed; IsRepository defaults to true.
type MockGitOperations struct {
	IsRepositoryFn         func() bool
	StageFilesFn           func(files ...string) error
	CommitFn               func(message string) error
	TagExistsFn            func(name string) (bool, error)
	CreateAnnotatedTagFn   func(name, message string) error
	CreateLightweightTagFn func(name string) error
}

var (
	_ core.GitCommitOperations = (*MockGitOperations)(nil)
	_ core.GitTagOperations    = (*MockGitOperations)(nil)
)

func (m *MockGitOperations) IsRepository() bool {
	if m.IsRepositoryFn != nil {
		return m.IsRepositoryFn()
	}
	return true
}

func (m *MockGitOperations) StageFiles(files ...string) error {
	if m.StageFilesFn != nil {
		return m.StageFilesFn(files...)
	}
	return nil
}

func (m *MockGitOperations) Commit(message string) error {
	if m.CommitFn != nil {
		return m.CommitFn(message)
	}
	return nil
}

func (m *MockGitOperations) TagExists(name string) (bool, error) {
	if m.TagExistsFn != nil {
		return m.TagExistsFn(name)
	}
	return false, nil
}

func (m *MockGitOperations) CreateAnnotatedTag(name, message string) error {
	if m.CreateAnnotatedTagFn != nil {
		return m.CreateAnnotatedTagFn(name, message)
	}
	return nil
}

func (m *MockGitOperations) CreateLightweightTag(name string) error {
	if m.CreateLightweightTagFn != nil {
		return m.CreateLightweightTagFn(name)
	}
	return nil
}
