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

package change

import (
	"encoding/json"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model"
	"gopkg.in/yaml.v3"
)

// ChangeKind describes the semantic impact of a single changed path or
// commit, independent of any particular module's current version.
//
// Where Bump encodes the operation to apply to a version, ChangeKind
// classifies an individual input (a file path matched against a pattern
// list, or a conventional-commit header matched against a type list) before
// those classifications are aggregated into a single Bump. ChangeKindIgnore
// has no Bump equivalent: an ignored path or commit contributes nothing to
// the aggregate decision, whereas BumpNone means "the aggregate decision was
// to not bump".
type ChangeKind int

const (
	// ChangeKindUnclassified indicates that a path or commit matched none of
	// the configured ignore/major/minor/patch patterns.
	//
	// Unclassified entries are treated conservatively: the pattern matcher
	// (C2) folds them into the patch bucket when deriving a bump type,
	// since an unrecognized change is assumed to require at least a patch
	// release rather than being silently dropped.
	ChangeKindUnclassified ChangeKind = iota

	// ChangeKindIgnore indicates that a path or commit matched an
	// ignore_patterns entry and contributes nothing to the computed bump
	// type.
	ChangeKindIgnore

	// ChangeKindPatch indicates that a path or commit matched a
	// patch_patterns entry.
	ChangeKindPatch

	// ChangeKindMinor indicates that a path or commit matched a
	// minor_patterns entry.
	ChangeKindMinor

	// ChangeKindMajor indicates that a path or commit matched a
	// major_patterns entry, or carries a breaking-change marker.
	ChangeKindMajor
)

// String constants for ChangeKind values used in serialization and
// human-facing output.
const (
	ChangeKindUnclassifiedStr = "unclassified"
	ChangeKindIgnoreStr       = "ignore"
	ChangeKindPatchStr        = "patch"
	ChangeKindMinorStr        = "minor"
	ChangeKindMajorStr        = "major"
)

// ParseChangeKind converts a textual representation into a ChangeKind value.
//
// Accepted strings mirror the ChangeKind*Str constants. Any other input is
// treated as invalid and ParseChangeKind returns a *errors.ParseError.
func ParseChangeKind(s string) (ChangeKind, error) {
	switch s {
	case ChangeKindUnclassifiedStr:
		return ChangeKindUnclassified, nil
	case ChangeKindIgnoreStr:
		return ChangeKindIgnore, nil
	case ChangeKindPatchStr:
		return ChangeKindPatch, nil
	case ChangeKindMinorStr:
		return ChangeKindMinor, nil
	case ChangeKindMajorStr:
		return ChangeKindMajor, nil
	default:
		return ChangeKindUnclassified, &errors.ParseError{Type: "ChangeKind", Value: s}
	}
}

// String returns the canonical lowercase string representation of the
// ChangeKind value, or "unknown" if the value is not one of the defined
// constants.
func (k ChangeKind) String() string {
	switch k {
	case ChangeKindUnclassified:
		return ChangeKindUnclassifiedStr
	case ChangeKindIgnore:
		return ChangeKindIgnoreStr
	case ChangeKindPatch:
		return ChangeKindPatchStr
	case ChangeKindMinor:
		return ChangeKindMinorStr
	case ChangeKindMajor:
		return ChangeKindMajorStr
	default:
		return "unknown"
	}
}

// Valid reports whether the ChangeKind value is one of the defined
// constants.
func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeKindUnclassified, ChangeKindIgnore, ChangeKindPatch, ChangeKindMinor, ChangeKindMajor:
		return true
	default:
		return false
	}
}

// Bump returns the Bump value a single ChangeKind maps to when no other
// changes are present: ChangeKindMajor/Minor/Patch map to their namesake
// Bump, ChangeKindIgnore and ChangeKindUnclassified map to BumpNone.
//
// ChangeClassification.RequiredBumpType folds a whole file list rather than
// a single ChangeKind and additionally treats unclassified files as
// requiring a patch bump (see ChangeClassification.RequiredBumpType); this
// method is the simpler per-entry mapping used when building that fold.
func (k ChangeKind) Bump() Bump {
	switch k {
	case ChangeKindMajor:
		return BumpMajor
	case ChangeKindMinor:
		return BumpMinor
	case ChangeKindPatch:
		return BumpPatch
	default:
		return BumpNone
	}
}

// TypeName returns "ChangeKind". Implements model.Identifiable.
func (k ChangeKind) TypeName() string {
	return "ChangeKind"
}

// Redacted returns the same representation as String(); ChangeKind carries
// no sensitive data. Implements model.Loggable.
func (k ChangeKind) Redacted() string {
	return k.String()
}

// IsZero reports whether k is ChangeKindUnclassified, the zero value.
// Implements model.ZeroCheckable.
func (k ChangeKind) IsZero() bool {
	return k == ChangeKindUnclassified
}

// Equal reports whether k equals other, which may be a ChangeKind or
// *ChangeKind.
func (k ChangeKind) Equal(other any) bool {
	switch v := other.(type) {
	case ChangeKind:
		return k == v
	case *ChangeKind:
		return v != nil && k == *v
	default:
		return false
	}
}

// Validate reports whether k is one of the defined ChangeKind constants.
// Implements model.Validatable.
func (k ChangeKind) Validate() error {
	if !k.Valid() {
		return &errors.ValidationError{Type: "ChangeKind", Reason: "invalid ChangeKind value", Value: int(k)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for ChangeKind.
func (k ChangeKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "ChangeKind", Value: int(k)}
	}
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for ChangeKind.
func (k *ChangeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "ChangeKind", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseChangeKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for ChangeKind.
func (k ChangeKind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "ChangeKind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ChangeKind.
func (k *ChangeKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "ChangeKind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseChangeKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Compile-time check that ChangeKind implements model.Model.
var _ model.Model = (*ChangeKind)(nil)

// ChangeClassification is the output of the pattern matcher (C2): a
// partition of a list of changed file paths into ignored, major, minor,
// patch, and unclassified buckets, plus the derived fields a caller needs to
// decide whether and how to bump a version.
//
// Files are listed by path only; ChangeClassification does not retain the
// kind of filesystem change (added/modified/deleted) because pattern
// matching operates purely on path shape.
type ChangeClassification struct {
	// Ignored holds paths matched by ignore_patterns.
	Ignored []string `json:"ignored,omitempty" yaml:"ignored,omitempty"`

	// Major holds paths matched by major_patterns.
	Major []string `json:"major,omitempty" yaml:"major,omitempty"`

	// Minor holds paths matched by minor_patterns.
	Minor []string `json:"minor,omitempty" yaml:"minor,omitempty"`

	// Patch holds paths matched by patch_patterns.
	Patch []string `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Unclassified holds paths that matched none of the configured
	// pattern lists.
	Unclassified []string `json:"unclassified,omitempty" yaml:"unclassified,omitempty"`

	// SourceOnlyMode mirrors the ChangeDetectionConfig.source_only_mode
	// flag that was in effect when this classification was computed: if
	// set, a classification with zero non-ignored files is treated as
	// ShouldIgnore. Unclassified files count as non-ignored.
	SourceOnlyMode bool `json:"source_only_mode,omitempty" yaml:"source_only_mode,omitempty"`

	// MinimumBumpType raises RequiredBumpType to at least this value when
	// non-zero and the classification is not ShouldIgnore. Mirrors
	// ChangeDetectionConfig.minimum_bump_type.
	MinimumBumpType Bump `json:"minimum_bump_type,omitempty" yaml:"minimum_bump_type,omitempty"`
}

// TotalFiles returns the total number of files considered across all
// buckets.
func (c ChangeClassification) TotalFiles() int {
	return len(c.Ignored) + len(c.Major) + len(c.Minor) + len(c.Patch) + len(c.Unclassified)
}

// ShouldIgnore reports whether the classification as a whole should be
// treated as producing no version bump: every file was ignored, or
// SourceOnlyMode is set and no non-ignored file remains.
func (c ChangeClassification) ShouldIgnore() bool {
	total := c.TotalFiles()
	if total == 0 {
		return false
	}
	if total == len(c.Ignored) {
		return true
	}
	nonIgnored := total - len(c.Ignored)
	if c.SourceOnlyMode && nonIgnored == 0 {
		return true
	}
	return false
}

// RequiredBumpType derives the Bump implied by this classification:
// ChangeKindMajor if any major files are present, else ChangeKindMinor if
// any minor files, else ChangeKindPatch if any patch or unclassified files,
// else BumpNone. The result is raised to MinimumBumpType when that floor is
// higher and the classification is not ShouldIgnore.
func (c ChangeClassification) RequiredBumpType() Bump {
	if c.ShouldIgnore() {
		return BumpNone
	}

	bump := BumpNone
	switch {
	case len(c.Major) > 0:
		bump = BumpMajor
	case len(c.Minor) > 0:
		bump = BumpMinor
	case len(c.Patch) > 0 || len(c.Unclassified) > 0:
		bump = BumpPatch
	}

	if c.MinimumBumpType > bump {
		bump = c.MinimumBumpType
	}
	return bump
}

// Reason returns a short human-readable explanation of why
// RequiredBumpType() resolved the way it did, suitable for logs or a
// changelog preamble.
func (c ChangeClassification) Reason() string {
	if c.ShouldIgnore() {
		if c.SourceOnlyMode {
			return "source-only mode: no non-ignored files changed"
		}
		return "all changed files matched ignore patterns"
	}
	switch c.RequiredBumpType() {
	case BumpMajor:
		return "major_patterns matched one or more changed files"
	case BumpMinor:
		return "minor_patterns matched one or more changed files"
	case BumpPatch:
		if len(c.Patch) > 0 {
			return "patch_patterns matched one or more changed files"
		}
		return "unclassified files present, treated as patch-level"
	default:
		return "no changed files"
	}
}

// TypeName returns "ChangeClassification". Implements model.Identifiable.
func (c ChangeClassification) TypeName() string {
	return "ChangeClassification"
}

// IsZero reports whether c has no files in any bucket.
// Implements model.ZeroCheckable.
func (c ChangeClassification) IsZero() bool {
	return c.TotalFiles() == 0
}

// String returns a verbose representation of c including every file path.
// Implements model.Loggable. File paths are not considered sensitive.
func (c ChangeClassification) String() string {
	b, err := json.Marshal(c)
	if err != nil {
		return "ChangeClassification{<unprintable>}"
	}
	return string(b)
}

// Redacted returns the same representation as String(); file paths carry no
// sensitive data in monover's threat model. Implements model.Loggable.
func (c ChangeClassification) Redacted() string {
	return c.String()
}

// Validate reports whether c is internally consistent. ChangeClassification
// has no required fields (an empty classification, e.g. for an initial-repo
// short-circuit, is valid) but MinimumBumpType MUST be a valid Bump.
// Implements model.Validatable.
func (c ChangeClassification) Validate() error {
	if !c.MinimumBumpType.Valid() {
		return &errors.ValidationError{
			Type:   "ChangeClassification",
			Field:  "MinimumBumpType",
			Reason: "invalid Bump value",
			Value:  int(c.MinimumBumpType),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for ChangeClassification using a
// type-alias indirection to avoid infinite recursion through the method set.
func (c ChangeClassification) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	type alias ChangeClassification
	return json.Marshal(alias(c))
}

// UnmarshalJSON implements json.Unmarshaler for ChangeClassification,
// validating the result before returning.
func (c *ChangeClassification) UnmarshalJSON(data []byte) error {
	type alias ChangeClassification
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return &errors.UnmarshalError{Type: "ChangeClassification", Data: data, Reason: err.Error()}
	}
	out := ChangeClassification(a)
	if err := out.Validate(); err != nil {
		return err
	}
	*c = out
	return nil
}

// MarshalYAML implements yaml.Marshaler for ChangeClassification.
func (c ChangeClassification) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	type alias ChangeClassification
	return alias(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ChangeClassification,
// validating the result before returning.
func (c *ChangeClassification) UnmarshalYAML(node *yaml.Node) error {
	type alias ChangeClassification
	var a alias
	if err := node.Decode(&a); err != nil {
		return &errors.UnmarshalError{Type: "ChangeClassification", Data: []byte(node.Value), Reason: err.Error()}
	}
	out := ChangeClassification(a)
	if err := out.Validate(); err != nil {
		return err
	}
	*c = out
	return nil
}

// Compile-time check that ChangeClassification implements model.Model.
var _ model.Model = (*ChangeClassification)(nil)
