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

// Package branch classifies Git branch names into release-relevant kinds
// and resolves the project- and global-scoped version tags that anchor the
// version calculator's baseline lookups.
package branch

import (
	"encoding/json"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model"
	"gopkg.in/yaml.v3"
)

// Kind categorizes a branch by its role in the release process.
type Kind int

const (
	// KindMain marks the repository's primary trunk branch ("main" or
	// "master").
	KindMain Kind = iota

	// KindDev marks an integration branch ("dev", "develop", or
	// "development") where prerelease versions typically accumulate.
	KindDev

	// KindRelease marks a branch dedicated to stabilizing a specific
	// version line, such as "release/2.4" or "v2.4.0".
	KindRelease

	// KindFeature marks any branch that is neither Main, Dev, nor Release —
	// the default classification for topic and feature branches.
	KindFeature
)

const (
	KindMainStr    = "main"
	KindDevStr     = "dev"
	KindReleaseStr = "release"
	KindFeatureStr = "feature"
)

// ParseKind converts a textual representation into a Kind value.
func ParseKind(s string) (Kind, error) {
	switch s {
	case KindMainStr:
		return KindMain, nil
	case KindDevStr:
		return KindDev, nil
	case KindReleaseStr:
		return KindRelease, nil
	case KindFeatureStr:
		return KindFeature, nil
	default:
		return KindFeature, &errors.ParseError{Type: "Kind", Value: s}
	}
}

// String returns the canonical lowercase name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindMain:
		return KindMainStr
	case KindDev:
		return KindDevStr
	case KindRelease:
		return KindReleaseStr
	case KindFeature:
		return KindFeatureStr
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the defined constants.
func (k Kind) Valid() bool {
	return k == KindMain || k == KindDev || k == KindRelease || k == KindFeature
}

// TypeName returns "Kind".
func (k Kind) TypeName() string {
	return "Kind"
}

// Redacted returns the same value as String(); branch kinds carry no
// sensitive information.
func (k Kind) Redacted() string {
	return k.String()
}

// IsZero reports whether k is KindMain, the zero value.
func (k Kind) IsZero() bool {
	return k == KindMain
}

// Equal reports whether other is an equal Kind value.
func (k Kind) Equal(other any) bool {
	switch v := other.(type) {
	case Kind:
		return k == v
	case *Kind:
		return v != nil && k == *v
	default:
		return false
	}
}

// Validate returns an error if k is not one of the defined constants.
func (k Kind) Validate() error {
	if !k.Valid() {
		return &errors.ValidationError{Type: "Kind", Field: "", Reason: "invalid branch Kind value", Value: int(k)}
	}
	return nil
}

// MarshalJSON serializes k as its canonical lowercase string.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into k via ParseKind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: "empty data"}
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML serializes k as its canonical lowercase string.
func (k Kind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "Kind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML parses a YAML scalar into k via ParseKind.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Kind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Compile-time check that Kind implements model.Model.
var _ model.Model = (*Kind)(nil)
