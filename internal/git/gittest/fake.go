// Package gittest provides an in-memory git.Repository for tests.
package gittest

import (
	"context"
)

// Repo is a git.Repository with canned answers.
type Repo struct {
	Staged    []string
	RootDir   string
	Branch    string
	StagedErr error
	RootErr   error
	BranchErr error

	StagedCalls int
}

// StagedPaths returns Staged.
func (r *Repo) StagedPaths(_ context.Context) ([]string, error) {
	r.StagedCalls++
	if r.StagedErr != nil {
		return nil, r.StagedErr
	}
	return append([]string(nil), r.Staged...), nil
}

// Root returns RootDir.
func (r *Repo) Root(_ context.Context) (string, error) {
	if r.RootErr != nil {
		return "", r.RootErr
	}
	return r.RootDir, nil
}

// CurrentBranch returns Branch.
func (r *Repo) CurrentBranch(_ context.Context) (string, error) {
	if r.BranchErr != nil {
		return "", r.BranchErr
	}
	return r.Branch, nil
}
