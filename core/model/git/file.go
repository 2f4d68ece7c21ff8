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
	// FilePathMaxLength is the maximum allowed length, in bytes, for a path
	// in Path or OldPath.
	FilePathMaxLength = 4096
)

// FileChangeKind describes the kind of change made to a file in a commit.
// The zero value, FileChangeUnknown, represents a change kind that has not
// been classified.
type FileChangeKind uint8

const (
	FileChangeUnknown FileChangeKind = iota
	FileChangeAdded
	FileChangeModified
	FileChangeDeleted
	FileChangeRenamed
	FileChangeCopied
	FileChangeType
)

const (
	FileChangeUnknownStr  = "unknown"
	FileChangeAddedStr    = "added"
	FileChangeModifiedStr = "modified"
	FileChangeDeletedStr  = "deleted"
	FileChangeRenamedStr  = "renamed"
	FileChangeCopiedStr   = "copied"

	// FileChangeTypeStr is the canonical string for FileChangeType.
	// "type_changed" and "typechanged" are also accepted when parsing.
	FileChangeTypeStr = "type-changed"
)

// ParseFileChangeKind parses a trimmed, lowercased s into a FileChangeKind,
// returning an error if s does not match a known kind name.
func ParseFileChangeKind(s string) (FileChangeKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))

	switch normalized {
	case FileChangeUnknownStr:
		return FileChangeUnknown, nil
	case FileChangeAddedStr:
		return FileChangeAdded, nil
	case FileChangeModifiedStr:
		return FileChangeModified, nil
	case FileChangeDeletedStr:
		return FileChangeDeleted, nil
	case FileChangeRenamedStr:
		return FileChangeRenamed, nil
	case FileChangeCopiedStr:
		return FileChangeCopied, nil
	case FileChangeTypeStr, "type_changed", "typechanged":
		return FileChangeType, nil
	default:
		return FileChangeUnknown, fmt.Errorf("unknown FileChangeKind: %q", s)
	}
}

// String returns the lowercase string representation of k, or
// "FileChangeKind(N)" for an out-of-range value.
func (k FileChangeKind) String() string {
	switch k {
	case FileChangeUnknown:
		return FileChangeUnknownStr
	case FileChangeAdded:
		return FileChangeAddedStr
	case FileChangeModified:
		return FileChangeModifiedStr
	case FileChangeDeleted:
		return FileChangeDeletedStr
	case FileChangeRenamed:
		return FileChangeRenamedStr
	case FileChangeCopied:
		return FileChangeCopiedStr
	case FileChangeType:
		return FileChangeTypeStr
	default:
		return fmt.Sprintf("FileChangeKind(%d)", uint8(k))
	}
}

// IsZero reports whether k is FileChangeUnknown.
func (k FileChangeKind) IsZero() bool {
	return k == FileChangeUnknown
}

// Equal reports whether k and other are the same kind.
func (k FileChangeKind) Equal(other FileChangeKind) bool {
	return k == other
}

// Validate reports whether k is one of the defined FileChangeKind constants.
func (k FileChangeKind) Validate() error {
	switch k {
	case FileChangeUnknown, FileChangeAdded, FileChangeModified,
		FileChangeDeleted, FileChangeRenamed, FileChangeCopied, FileChangeType:
		return nil
	default:
		return &errors.ValidationError{
			Type:   "FileChangeKind",
			Field:  "",
			Reason: fmt.Sprintf("invalid value: %d", uint8(k)),
			Value:  uint8(k),
		}
	}
}

// FileChange describes a single file change in a Git commit: the path(s)
// affected and the nature of the change.
//
// For renames and copies, OldPath holds the source path and Path the
// destination path. For all other kinds, OldPath is empty.
//
// The zero value represents "no change specified" and fails Validate.
type FileChange struct {
	// Path is the new/current path, relative to the repository root, using
	// forward slashes.
	Path string

	// OldPath is the source path for renames and copies; empty otherwise.
	OldPath string

	// Kind is the kind of change applied to this file.
	Kind FileChangeKind
}

// String returns a debug representation of fc.
func (fc FileChange) String() string {
	if fc.OldPath != "" {
		return fmt.Sprintf("FileChange{Path:%s, OldPath:%s, Kind:%s}",
			fc.Path, fc.OldPath, fc.Kind.String())
	}
	return fmt.Sprintf("FileChange{Path:%s, Kind:%s}",
		fc.Path, fc.Kind.String())
}

// IsZero reports whether fc is the zero value.
func (fc FileChange) IsZero() bool {
	return fc.Path == "" && fc.OldPath == "" && fc.Kind.IsZero()
}

// Equal reports whether fc and other describe the same file change.
func (fc FileChange) Equal(other FileChange) bool {
	return fc.Path == other.Path &&
		fc.OldPath == other.OldPath &&
		fc.Kind.Equal(other.Kind)
}

// Validate reports whether fc satisfies the invariants of a file change: a
// non-empty, repository-relative Path within FilePathMaxLength, a valid
// Kind, and an OldPath that is either empty or (only for renames and
// copies) itself a valid repository-relative path within FilePathMaxLength.
func (fc FileChange) Validate() error {
	if fc.Path == "" {
		return &errors.ValidationError{Type: "FileChange", Field: "Path", Reason: "must not be empty"}
	}
	if len(fc.Path) > FilePathMaxLength {
		return &errors.ValidationError{Type: "FileChange", Field: "Path", Reason: fmt.Sprintf("exceeds maximum length of %d bytes (got %d)", FilePathMaxLength, len(fc.Path))}
	}
	if strings.HasPrefix(fc.Path, "/") {
		return &errors.ValidationError{Type: "FileChange", Field: "Path", Reason: fmt.Sprintf("must be relative (no leading slash): %q", fc.Path)}
	}

	if err := fc.Kind.Validate(); err != nil {
		return &errors.ValidationError{Type: "FileChange", Field: "Kind", Reason: fmt.Sprintf("invalid: %v", err)}
	}

	if fc.OldPath != "" {
		if fc.Kind != FileChangeRenamed && fc.Kind != FileChangeCopied {
			return &errors.ValidationError{Type: "FileChange", Field: "OldPath", Reason: fmt.Sprintf("should only be set for renamed/copied files (got kind=%s)", fc.Kind.String())}
		}
		if len(fc.OldPath) > FilePathMaxLength {
			return &errors.ValidationError{Type: "FileChange", Field: "OldPath", Reason: fmt.Sprintf("exceeds maximum length of %d bytes (got %d)", FilePathMaxLength, len(fc.OldPath))}
		}
		if strings.HasPrefix(fc.OldPath, "/") {
			return &errors.ValidationError{Type: "FileChange", Field: "OldPath", Reason: fmt.Sprintf("must be relative (no leading slash): %q", fc.OldPath)}
		}
	}

	return nil
}
