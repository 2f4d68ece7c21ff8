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

package version

import (
	"encoding/json"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model"
	"gopkg.in/yaml.v3"
)

// Scheme selects how Calculate derives a project's version string.
type Scheme int

const (
	// SchemeSemVer computes a Semantic Versioning 2.0.0 string, the
	// default scheme.
	SchemeSemVer Scheme = iota

	// SchemeCalVer computes a calendar-versioned string via
	// core/model/calver, projected onto a semver.Version for downstream
	// constraint checks and tag naming.
	SchemeCalVer
)

const (
	SchemeSemVerStr = "semver"
	SchemeCalVerStr = "calver"
)

// ParseScheme converts a textual representation into a Scheme value.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case SchemeSemVerStr:
		return SchemeSemVer, nil
	case SchemeCalVerStr:
		return SchemeCalVer, nil
	default:
		return SchemeSemVer, &errors.ParseError{Type: "Scheme", Value: s}
	}
}

// String returns the canonical lowercase name of the Scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeSemVer:
		return SchemeSemVerStr
	case SchemeCalVer:
		return SchemeCalVerStr
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined constants.
func (s Scheme) Valid() bool {
	return s == SchemeSemVer || s == SchemeCalVer
}

// TypeName returns "Scheme".
func (s Scheme) TypeName() string {
	return "Scheme"
}

// Redacted returns the same value as String(); schemes carry no sensitive
// information.
func (s Scheme) Redacted() string {
	return s.String()
}

// IsZero reports whether s is SchemeSemVer, the zero value.
func (s Scheme) IsZero() bool {
	return s == SchemeSemVer
}

// Equal reports whether other is an equal Scheme value.
func (s Scheme) Equal(other any) bool {
	switch v := other.(type) {
	case Scheme:
		return s == v
	case *Scheme:
		return v != nil && s == *v
	default:
		return false
	}
}

// Validate returns an error if s is not one of the defined constants.
func (s Scheme) Validate() error {
	if !s.Valid() {
		return &errors.ValidationError{Type: "Scheme", Reason: "invalid Scheme value", Value: int(s)}
	}
	return nil
}

// MarshalJSON serializes s as its canonical lowercase string.
func (s Scheme) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Scheme", Value: int(s)}
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into s via ParseScheme.
func (s *Scheme) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Scheme", Data: data, Reason: "empty data"}
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &errors.UnmarshalError{Type: "Scheme", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseScheme(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML serializes s as its canonical lowercase string.
func (s Scheme) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Scheme", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML parses a YAML scalar into s via ParseScheme.
func (s *Scheme) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Scheme", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseScheme(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Compile-time check that Scheme implements model.Model.
var _ model.Model = (*Scheme)(nil)

// PrereleaseType selects which prerelease channel, if any, Calculate
// attaches to a Main-branch version bump.
type PrereleaseType int

const (
	// PrereleaseNone attaches no prerelease identifier: Main-branch bumps
	// produce a plain release version.
	PrereleaseNone PrereleaseType = iota

	// PrereleaseAlpha attaches an "alpha.N" identifier.
	PrereleaseAlpha

	// PrereleaseBeta attaches a "beta.N" identifier.
	PrereleaseBeta

	// PrereleaseRC attaches an "rc.N" identifier.
	PrereleaseRC

	// PrereleaseCustom attaches a caller-supplied channel name (see
	// Options.PrereleaseCustom) followed by ".N".
	PrereleaseCustom
)

const (
	PrereleaseNoneStr   = "none"
	PrereleaseAlphaStr  = "alpha"
	PrereleaseBetaStr   = "beta"
	PrereleaseRCStr     = "rc"
	PrereleaseCustomStr = "custom"
)

// ParsePrereleaseType converts a textual representation into a
// PrereleaseType value.
func ParsePrereleaseType(s string) (PrereleaseType, error) {
	switch s {
	case PrereleaseNoneStr:
		return PrereleaseNone, nil
	case PrereleaseAlphaStr:
		return PrereleaseAlpha, nil
	case PrereleaseBetaStr:
		return PrereleaseBeta, nil
	case PrereleaseRCStr:
		return PrereleaseRC, nil
	case PrereleaseCustomStr:
		return PrereleaseCustom, nil
	default:
		return PrereleaseNone, &errors.ParseError{Type: "PrereleaseType", Value: s}
	}
}

// String returns the canonical lowercase name of the PrereleaseType.
func (p PrereleaseType) String() string {
	switch p {
	case PrereleaseNone:
		return PrereleaseNoneStr
	case PrereleaseAlpha:
		return PrereleaseAlphaStr
	case PrereleaseBeta:
		return PrereleaseBetaStr
	case PrereleaseRC:
		return PrereleaseRCStr
	case PrereleaseCustom:
		return PrereleaseCustomStr
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the defined constants.
func (p PrereleaseType) Valid() bool {
	switch p {
	case PrereleaseNone, PrereleaseAlpha, PrereleaseBeta, PrereleaseRC, PrereleaseCustom:
		return true
	default:
		return false
	}
}

// TypeName returns "PrereleaseType".
func (p PrereleaseType) TypeName() string {
	return "PrereleaseType"
}

// Redacted returns the same value as String(); prerelease types carry no
// sensitive information.
func (p PrereleaseType) Redacted() string {
	return p.String()
}

// IsZero reports whether p is PrereleaseNone, the zero value.
func (p PrereleaseType) IsZero() bool {
	return p == PrereleaseNone
}

// Equal reports whether other is an equal PrereleaseType value.
func (p PrereleaseType) Equal(other any) bool {
	switch v := other.(type) {
	case PrereleaseType:
		return p == v
	case *PrereleaseType:
		return v != nil && p == *v
	default:
		return false
	}
}

// Validate returns an error if p is not one of the defined constants.
func (p PrereleaseType) Validate() error {
	if !p.Valid() {
		return &errors.ValidationError{Type: "PrereleaseType", Reason: "invalid PrereleaseType value", Value: int(p)}
	}
	return nil
}

// MarshalJSON serializes p as its canonical lowercase string.
func (p PrereleaseType) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "PrereleaseType", Value: int(p)}
	}
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into p via ParsePrereleaseType.
func (p *PrereleaseType) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "PrereleaseType", Data: data, Reason: "empty data"}
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &errors.UnmarshalError{Type: "PrereleaseType", Data: data, Reason: err.Error()}
	}
	parsed, err := ParsePrereleaseType(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML serializes p as its canonical lowercase string.
func (p PrereleaseType) MarshalYAML() (any, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "PrereleaseType", Value: int(p)}
	}
	return p.String(), nil
}

// UnmarshalYAML parses a YAML scalar into p via ParsePrereleaseType.
func (p *PrereleaseType) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "PrereleaseType", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParsePrereleaseType(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Compile-time check that PrereleaseType implements model.Model.
var _ model.Model = (*PrereleaseType)(nil)

// channel returns the prerelease channel name p contributes to a version
// string: custom uses the caller-supplied name, every other type
// (including none) returns its String form.
func (p PrereleaseType) channel(custom string) string {
	if p == PrereleaseCustom {
		return custom
	}
	return p.String()
}
