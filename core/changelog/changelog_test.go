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

package changelog_test

import (
	"testing"
	"time"

	"dirpx.dev/monover/core/changelog"
	"dirpx.dev/monover/core/commitanalysis"
	"dirpx.dev/monover/core/model/change"
	"dirpx.dev/monover/core/model/git"
)

func mustCommit(t *testing.T, hexHash, message, authorName string) git.Commit {
	t.Helper()
	hash, err := git.ParseHash(hexHash)
	if err != nil {
		t.Fatalf("ParseHash(%q): %v", hexHash, err)
	}
	sig, err := git.NewSignature(authorName, authorName+"@example.com", time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("NewSignature: %v", err)
	}
	return git.Commit{Hash: hash, Author: sig, Committer: sig, Message: message}
}

func TestAssembleGroupsByFixedSectionOrder(t *testing.T) {
	commits := []git.Commit{
		mustCommit(t, "1111111111111111111111111111111111111111", "feat(api): add export endpoint", "Ada"),
		mustCommit(t, "2222222222222222222222222222222222222222", "fix: correct off-by-one (#42)", "Bob"),
		mustCommit(t, "3333333333333333333333333333333333333333", "docs: tidy readme", "Ada"),
		mustCommit(t, "4444444444444444444444444444444444444444", "feat!: remove legacy field\n\nBREAKING CHANGE: clients must migrate", "Cid"),
	}

	cl := changelog.Assemble(commits, "2.0.0", "1.2.3", commitanalysis.DefaultConfig(), time.Unix(1700000000, 0).UTC())

	if cl.TotalCommits != 4 {
		t.Errorf("TotalCommits = %d, want 4", cl.TotalCommits)
	}
	if cl.BumpType != change.BumpMajor {
		t.Errorf("BumpType = %v, want Major", cl.BumpType)
	}
	if len(cl.Sections) == 0 || cl.Sections[0].Title != "Breaking Changes" {
		t.Fatalf("Sections[0] = %+v, want Breaking Changes first", cl.Sections)
	}
	breaking := cl.Sections[0].Entries[0]
	if breaking.BreakingDescription != "clients must migrate" {
		t.Errorf("BreakingDescription = %q, want %q", breaking.BreakingDescription, "clients must migrate")
	}

	var sawFeatures, sawFixes, sawDocs bool
	for _, s := range cl.Sections {
		switch s.Title {
		case "Features":
			sawFeatures = true
		case "Bug Fixes":
			sawFixes = true
			if s.Entries[0].PRNumber != 42 {
				t.Errorf("PRNumber = %d, want 42", s.Entries[0].PRNumber)
			}
		case "Other":
			sawDocs = true
		}
	}
	if !sawFeatures || !sawFixes {
		t.Errorf("expected Features and Bug Fixes sections, got %+v", cl.Sections)
	}
	_ = sawDocs // docs is an ignore pattern by default, so it should NOT appear.
	for _, s := range cl.Sections {
		if s.Title == "Other" {
			t.Errorf("docs commit should be ignored by DefaultConfig, not land in Other")
		}
	}

	if len(cl.Contributors) != 3 {
		t.Errorf("Contributors = %v, want 3 distinct authors", cl.Contributors)
	}
}

func TestAssembleEmptyCommitsYieldsNoSections(t *testing.T) {
	cl := changelog.Assemble(nil, "1.0.0", "", commitanalysis.DefaultConfig(), time.Unix(0, 0).UTC())
	if len(cl.Sections) != 0 {
		t.Errorf("Sections = %v, want none for an empty commit range", cl.Sections)
	}
	if cl.BumpType != change.BumpNone {
		t.Errorf("BumpType = %v, want None", cl.BumpType)
	}
}

func TestAssembleUnparsedCommitLandsInOther(t *testing.T) {
	commits := []git.Commit{
		mustCommit(t, "5555555555555555555555555555555555555555", "wip: quick hack, fix later", "Ada"),
	}
	cl := changelog.Assemble(commits, "1.0.1", "1.0.0", commitanalysis.DefaultConfig(), time.Unix(0, 0).UTC())
	if len(cl.Sections) != 1 || cl.Sections[0].Title != "Other" {
		t.Fatalf("Sections = %+v, want a single Other section", cl.Sections)
	}
	if cl.Sections[0].Entries[0].Type != "unknown" {
		t.Errorf("Type = %q, want unknown for a non-conventional header", cl.Sections[0].Entries[0].Type)
	}
}
