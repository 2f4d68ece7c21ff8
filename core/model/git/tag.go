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
	"regexp"
	"strings"
	"unicode"
)

const (
	// TagNameMinLen is the minimum number of runes in a non-zero TagName.
	TagNameMinLen = 1

	// TagNameMaxLen is the maximum number of runes in a TagName, chosen to
	// accommodate hierarchical names like "moduleA/v1.2.3" while preventing
	// abuse.
	TagNameMaxLen = 256

	// TagMessageMaxLen is the maximum allowed length, in bytes, for an
	// annotated tag's message.
	TagMessageMaxLen = 65536 // 64KB
)

// tagNamePattern is intentionally permissive: it accepts simple version
// tags, hierarchical tags ("moduleA/v1.2.3"), and custom identifiers, while
// rejecting whitespace and control characters.
const tagNamePattern = `^[a-zA-Z0-9._/@{}\-^~:+]+$`

// TagNameRegexp is the compiled form of tagNamePattern.
var TagNameRegexp = regexp.MustCompile(tagNamePattern)

// TagName is a Git tag name without the "refs/tags/" prefix. The zero
// value (empty string) is valid and represents "no tag specified".
type TagName string

// ParseTagName trims s and validates the result, returning the zero value
// for an empty (or all-whitespace) input.
func ParseTagName(s string) (TagName, error) {
	normalized := strings.TrimSpace(s)
	if normalized == "" {
		return TagName(""), nil
	}

	tagName := TagName(normalized)
	if err := tagName.Validate(); err != nil {
		return "", fmt.Errorf("invalid TagName: %w", err)
	}

	return tagName, nil
}

// String returns tn's underlying string.
func (tn TagName) String() string {
	return string(tn)
}

// IsZero reports whether tn is the zero value.
func (tn TagName) IsZero() bool {
	return tn == ""
}

// Equal reports whether tn and other are the same tag name.
func (tn TagName) Equal(other TagName) bool {
	return tn == other
}

// Validate reports whether tn is either the zero value or a well-formed
// tag name: no leading/trailing whitespace, within TagNameMinLen and
// TagNameMaxLen runes, matching tagNamePattern, with no control or
// non-ASCII characters. Validate does not enforce strict
// git-check-ref-format rules (no "..", no trailing "/", no ".lock"
// suffix); TagName supports a wider range of naming conventions than Git
// itself requires.
func (tn TagName) Validate() error {
	if tn.IsZero() {
		return nil
	}

	str := string(tn)

	if strings.TrimSpace(str) != str {
		return fmt.Errorf("TagName %q contains leading or trailing whitespace", str)
	}

	runeCount := len([]rune(str))
	if runeCount < TagNameMinLen {
		return fmt.Errorf("TagName %q is too short: %d runes (minimum %d)", str, runeCount, TagNameMinLen)
	}
	if runeCount > TagNameMaxLen {
		return fmt.Errorf("TagName %q is too long: %d runes (maximum %d)", str, runeCount, TagNameMaxLen)
	}

	if !TagNameRegexp.MatchString(str) {
		return fmt.Errorf("TagName %q contains invalid characters (must match pattern %s)", str, tagNamePattern)
	}

	for _, r := range str {
		if unicode.IsControl(r) {
			return fmt.Errorf("TagName %q contains control character (U+%04X)", str, r)
		}
		if r > unicode.MaxASCII {
			return fmt.Errorf("TagName %q contains non-ASCII character %q (U+%04X)", str, r, r)
		}
	}

	return nil
}

// Tag is a Git tag resolved from the repository: the tag name, the object
// and commit hashes it resolves to, whether it is annotated, and its
// message. Tag deliberately carries no semver semantics of its own; higher
// layers parse version information out of Name when needed.
//
// For a lightweight tag, Object equals Commit and Annotated is false. For
// an annotated tag, Object is the tag object hash and Commit is the peeled
// commit hash, with Annotated true.
//
// The zero value represents "no tag specified" and fails Validate.
type Tag struct {
	Name      TagName
	Object    Hash
	Commit    Hash
	Annotated bool
	Message   string
}

// NewTag builds a Tag from its components, validating the result before
// returning it.
func NewTag(name TagName, object Hash, commit Hash, annotated bool, message string) (Tag, error) {
	tag := Tag{Name: name, Object: object, Commit: commit, Annotated: annotated, Message: message}
	if err := tag.Validate(); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

// String returns a debug representation of t, omitting Message for brevity.
func (t Tag) String() string {
	return fmt.Sprintf("Tag{Name:%s, Object:%s, Commit:%s, Annotated:%t}",
		t.Name.String(), t.Object.String(), t.Commit.String(), t.Annotated)
}

// IsZero reports whether t is the zero value.
func (t Tag) IsZero() bool {
	return t.Name.IsZero() &&
		t.Object.IsZero() &&
		t.Commit.IsZero() &&
		!t.Annotated &&
		t.Message == ""
}

// Equal reports whether t and other describe the same tag.
func (t Tag) Equal(other Tag) bool {
	return t.Name.Equal(other.Name) &&
		t.Object.Equal(other.Object) &&
		t.Commit.Equal(other.Commit) &&
		t.Annotated == other.Annotated &&
		t.Message == other.Message
}

// Validate reports whether t satisfies the invariants of a Git tag: a
// valid non-zero Name, valid non-zero Object and Commit hashes, an empty
// Message for a lightweight tag (Annotated == false), and a Message within
// TagMessageMaxLen.
func (t Tag) Validate() error {
	if t.Name.IsZero() {
		return fmt.Errorf("Tag Name must not be empty")
	}
	if err := t.Name.Validate(); err != nil {
		return fmt.Errorf("invalid Tag Name: %w", err)
	}

	if t.Object.IsZero() {
		return fmt.Errorf("Tag Object must not be empty")
	}
	if err := t.Object.Validate(); err != nil {
		return fmt.Errorf("invalid Tag Object: %w", err)
	}

	if t.Commit.IsZero() {
		return fmt.Errorf("Tag Commit must not be empty")
	}
	if err := t.Commit.Validate(); err != nil {
		return fmt.Errorf("invalid Tag Commit: %w", err)
	}

	if !t.Annotated && t.Message != "" {
		return fmt.Errorf("Tag Message must be empty for lightweight tags (got %d bytes)", len(t.Message))
	}

	if len(t.Message) > TagMessageMaxLen {
		return fmt.Errorf("Tag Message exceeds maximum length of %d bytes (got %d)", TagMessageMaxLen, len(t.Message))
	}

	return nil
}
