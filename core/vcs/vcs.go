/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package vcs defines the version-control adapter boundary (C4): the set of
// read/write operations the version calculator needs from an underlying
// repository, expressed in terms of the already-validated core/model/git
// domain types rather than loosely typed maps or strings.
//
// monover ships no concrete VCS implementation backed by an actual Git
// binary or library; that choice is deliberately left to an embedding
// application (a CLI, a CI action) that wires a real adapter over
// os/exec or a Git library of its choosing. This package supplies the
// contract plus an in-memory FakeVCS for tests.
package vcs

import (
	"context"

	"dirpx.dev/monover/core/model/git"
)

// VCS is the adapter surface the version calculator (C9) and its
// supporting components (change detection, branch/tag resolution) use to
// query and mutate an underlying repository.
//
// All methods accept a context.Context so a caller wrapping a slow or
// remote-backed implementation (for example, a shallow clone fetched over
// the network) can apply a deadline or honor cancellation; monover's own
// engine loop never spawns goroutines around these calls (see the
// single-threaded run model), it simply threads the context through.
type VCS interface {
	// CurrentBranchName returns the name of the currently checked-out
	// branch (without any "refs/heads/" prefix). It returns an error if
	// HEAD is detached or the branch name cannot be determined.
	CurrentBranchName(ctx context.Context) (string, error)

	// LookupCommit resolves a commit-ish (a full or abbreviated hash, a
	// ref name) to the Commit it identifies. It returns an
	// *errors.EngineError with EngineCodeCommitNotFound if no such commit
	// exists.
	LookupCommit(ctx context.Context, commitish string) (git.Commit, error)

	// LookupTag resolves a tag name to the Tag it identifies. It returns
	// an *errors.EngineError with EngineCodeTagNotFound if no such tag
	// exists.
	LookupTag(ctx context.Context, name git.TagName) (git.Tag, error)

	// ListTags returns every tag in the repository. The order is
	// unspecified; callers that need a particular order (for example,
	// version precedence) MUST sort the result themselves.
	ListTags(ctx context.Context) ([]git.Tag, error)

	// Diff returns the set of file changes between two commits, from
	// fromCommit (exclusive) to toCommit (inclusive).
	Diff(ctx context.Context, fromCommit, toCommit git.Hash) ([]git.FileChange, error)

	// CommitHeight returns the number of commits reachable from to but
	// not from from (equivalent to `git rev-list --count from..to`).
	CommitHeight(ctx context.Context, from, to git.Hash) (int, error)

	// CommitsBetween returns the ordered list of commits in (from, to],
	// oldest first.
	CommitsBetween(ctx context.Context, from, to git.Hash) ([]git.Commit, error)

	// CreateAnnotatedTag creates a new annotated tag named name at
	// targetCommit with the given message. Callers MUST check TagExists
	// first if idempotent tag creation is required; CreateAnnotatedTag
	// itself returns an *errors.EngineError with
	// EngineCodeTagAlreadyExists if name already exists.
	CreateAnnotatedTag(ctx context.Context, name git.TagName, message string, targetCommit git.Hash) error

	// TagExists reports whether a tag named name exists in the
	// repository.
	TagExists(ctx context.Context, name git.TagName) (bool, error)

	// IsShallow reports whether the repository is a shallow clone, which
	// limits the reliability of commit-height and ancestry queries.
	IsShallow(ctx context.Context) (bool, error)
}
