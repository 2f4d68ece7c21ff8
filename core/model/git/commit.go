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

package git

import (
	"fmt"
	"strings"

	"dirpx.dev/monover/core/errors"
)

const (
	// CommitMessageMaxLen is the maximum allowed length, in bytes, for a
	// commit message.
	CommitMessageMaxLen = 1048576 // 1MB

	// CommitSummaryMaxLen is the maximum allowed length, in bytes, for a
	// commit summary (the first line of the message).
	CommitSummaryMaxLen = 512

	// CommitParentsMaxCount is the maximum number of parent commits a
	// single commit may declare.
	CommitParentsMaxCount = 64

	// CommitChangesMaxCount is the maximum number of file changes a single
	// commit may declare.
	CommitChangesMaxCount = 10000
)

// Commit is a Git commit as seen by monover's version calculation and
// commit-analysis layers: enough to classify it under Conventional
// Commits rules (Message/Summary), map it to modules (Changes), and
// traverse commit-graph structure (Hash/Parents).
//
// The zero value represents "no commit specified" and fails Validate.
type Commit struct {
	// Hash is the commit object id. MUST NOT be empty for a valid Commit.
	Hash Hash

	// Parents lists parent commit hashes in order; empty for the initial
	// commit, 2+ for merge commits.
	Parents []Hash

	// Author is the person who originally wrote the change.
	Author Signature

	// Committer is the person who created the commit object, which may
	// differ from Author (rebases, cherry-picks, applied patches).
	Committer Signature

	// Message is the full raw commit message, using LF line endings.
	Message string

	// Summary is the first line of Message, trimmed. For a valid Commit,
	// Summary MUST equal the trimmed first line of Message.
	Summary string

	// Changes lists the file changes this commit introduced, used to map
	// commits to the modules they touch.
	Changes []FileChange
}

// NewCommit builds a Commit from its components, auto-extracting summary
// from the first line of message when summary is empty, then validating
// the result before returning it.
func NewCommit(hash Hash, parents []Hash, author, committer Signature, message, summary string, changes []FileChange) (Commit, error) {
	if summary == "" && message != "" {
		lines := strings.Split(message, "\n")
		if len(lines) > 0 {
			summary = strings.TrimSpace(lines[0])
		}
	}

	commit := Commit{
		Hash:      hash,
		Parents:   parents,
		Author:    author,
		Committer: committer,
		Message:   message,
		Summary:   summary,
		Changes:   changes,
	}

	if err := commit.Validate(); err != nil {
		return Commit{}, err
	}

	return commit, nil
}

// String returns a debug representation of c, omitting Message, Committer,
// and Changes for brevity.
func (c Commit) String() string {
	return fmt.Sprintf("Commit{Hash:%s, Parents:%d, Author:%s, Summary:%s}",
		c.Hash.String(), len(c.Parents), c.Author.Name, c.Summary)
}

// IsZero reports whether c is the zero value.
func (c Commit) IsZero() bool {
	return c.Hash.IsZero() &&
		len(c.Parents) == 0 &&
		c.Author.IsZero() &&
		c.Committer.IsZero() &&
		c.Message == "" &&
		c.Summary == "" &&
		len(c.Changes) == 0
}

// Equal reports whether c and other describe the same commit: equal Hash,
// Author, Committer, Message, Summary, and equal (same order) Parents and
// Changes.
func (c Commit) Equal(other Commit) bool {
	if !c.Hash.Equal(other.Hash) ||
		!c.Author.Equal(other.Author) ||
		!c.Committer.Equal(other.Committer) ||
		c.Message != other.Message ||
		c.Summary != other.Summary {
		return false
	}

	if len(c.Parents) != len(other.Parents) {
		return false
	}
	for i := range c.Parents {
		if !c.Parents[i].Equal(other.Parents[i]) {
			return false
		}
	}

	if len(c.Changes) != len(other.Changes) {
		return false
	}
	for i := range c.Changes {
		if !c.Changes[i].Equal(other.Changes[i]) {
			return false
		}
	}

	return true
}

// Validate reports whether c satisfies the invariants of a Git commit: a
// valid non-zero Hash, parents within CommitParentsMaxCount and each
// individually valid, non-zero valid Author and Committer, a non-empty
// LF-only Message within CommitMessageMaxLen, a Summary within
// CommitSummaryMaxLen that matches the trimmed first line of Message, and
// Changes within CommitChangesMaxCount and each individually valid.
func (c Commit) Validate() error {
	if c.Hash.IsZero() {
		return &errors.ValidationError{Type: "Commit", Field: "Hash", Reason: "must not be empty"}
	}
	if err := c.Hash.Validate(); err != nil {
		return &errors.ValidationError{Type: "Commit", Field: "Hash", Reason: fmt.Sprintf("invalid: %v", err)}
	}

	if len(c.Parents) > CommitParentsMaxCount {
		return &errors.ValidationError{Type: "Commit", Field: "Parents", Reason: fmt.Sprintf("has too many parents: %d (maximum %d)", len(c.Parents), CommitParentsMaxCount)}
	}
	for i, parent := range c.Parents {
		if parent.IsZero() {
			return &errors.ValidationError{Type: "Commit", Field: fmt.Sprintf("Parents[%d]", i), Reason: "must not be empty"}
		}
		if err := parent.Validate(); err != nil {
			return &errors.ValidationError{Type: "Commit", Field: fmt.Sprintf("Parents[%d]", i), Reason: fmt.Sprintf("invalid: %v", err)}
		}
	}

	if c.Author.IsZero() {
		return &errors.ValidationError{Type: "Commit", Field: "Author", Reason: "must not be empty"}
	}
	if err := c.Author.Validate(); err != nil {
		return &errors.ValidationError{Type: "Commit", Field: "Author", Reason: fmt.Sprintf("invalid: %v", err)}
	}

	if c.Committer.IsZero() {
		return &errors.ValidationError{Type: "Commit", Field: "Committer", Reason: "must not be empty"}
	}
	if err := c.Committer.Validate(); err != nil {
		return &errors.ValidationError{Type: "Commit", Field: "Committer", Reason: fmt.Sprintf("invalid: %v", err)}
	}

	if c.Message == "" {
		return &errors.ValidationError{Type: "Commit", Field: "Message", Reason: "must not be empty"}
	}
	if len(c.Message) > CommitMessageMaxLen {
		return &errors.ValidationError{Type: "Commit", Field: "Message", Reason: fmt.Sprintf("exceeds maximum length of %d bytes (got %d)", CommitMessageMaxLen, len(c.Message))}
	}
	if strings.Contains(c.Message, "\r\n") || strings.Contains(c.Message, "\r") {
		return &errors.ValidationError{Type: "Commit", Field: "Message", Reason: "contains CRLF or CR line endings (must use LF)"}
	}

	if c.Summary == "" {
		return &errors.ValidationError{Type: "Commit", Field: "Summary", Reason: "must not be empty"}
	}
	if len(c.Summary) > CommitSummaryMaxLen {
		return &errors.ValidationError{Type: "Commit", Field: "Summary", Reason: fmt.Sprintf("exceeds maximum length of %d bytes (got %d)", CommitSummaryMaxLen, len(c.Summary))}
	}
	if strings.Contains(c.Summary, "\n") || strings.Contains(c.Summary, "\r") {
		return &errors.ValidationError{Type: "Commit", Field: "Summary", Reason: "must not contain newlines"}
	}

	lines := strings.Split(c.Message, "\n")
	if len(lines) > 0 {
		expectedSummary := strings.TrimSpace(lines[0])
		if c.Summary != expectedSummary {
			return &errors.ValidationError{Type: "Commit", Field: "Summary", Reason: fmt.Sprintf("%q does not match first line of Message %q", c.Summary, expectedSummary)}
		}
	}

	if len(c.Changes) > CommitChangesMaxCount {
		return &errors.ValidationError{Type: "Commit", Field: "Changes", Reason: fmt.Sprintf("has too many changes: %d (maximum %d)", len(c.Changes), CommitChangesMaxCount)}
	}
	for i, change := range c.Changes {
		if err := change.Validate(); err != nil {
			return &errors.ValidationError{Type: "Commit", Field: fmt.Sprintf("Changes[%d]", i), Reason: fmt.Sprintf("invalid: %v", err)}
		}
	}

	return nil
}
