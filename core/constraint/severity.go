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

package constraint

import (
	"encoding/json"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model"
	"dirpx.dev/monover/core/pattern"
	"gopkg.in/yaml.v3"
)

// Severity controls whether a failed constraint rule fails validation
// outright or merely decorates the result.
type Severity int

const (
	// SeverityError fails validation: Result.Passed becomes false and
	// Validate returns a non-nil combined error.
	SeverityError Severity = iota

	// SeverityWarning records the violation without failing validation.
	SeverityWarning
)

const (
	SeverityErrorStr   = "error"
	SeverityWarningStr = "warning"
)

// ParseSeverity converts a textual representation into a Severity value.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case SeverityErrorStr:
		return SeverityError, nil
	case SeverityWarningStr:
		return SeverityWarning, nil
	default:
		return SeverityError, &errors.ParseError{Type: "Severity", Value: s}
	}
}

// String returns the canonical lowercase name of the Severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return SeverityErrorStr
	case SeverityWarning:
		return SeverityWarningStr
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined constants.
func (s Severity) Valid() bool {
	return s == SeverityError || s == SeverityWarning
}

// TypeName returns "Severity".
func (s Severity) TypeName() string {
	return "Severity"
}

// Redacted returns the same value as String(); severities carry no
// sensitive information.
func (s Severity) Redacted() string {
	return s.String()
}

// IsZero reports whether s is SeverityError, the zero value. SeverityError
// is a meaningful default: an unconfigured rule fails loudly rather than
// silently warning.
func (s Severity) IsZero() bool {
	return s == SeverityError
}

// Equal reports whether other is an equal Severity value.
func (s Severity) Equal(other any) bool {
	switch v := other.(type) {
	case Severity:
		return s == v
	case *Severity:
		return v != nil && s == *v
	default:
		return false
	}
}

// Validate returns an error if s is not one of the defined constants.
func (s Severity) Validate() error {
	if !s.Valid() {
		return &errors.ValidationError{Type: "Severity", Reason: "invalid Severity value", Value: int(s)}
	}
	return nil
}

// MarshalJSON serializes s as its canonical lowercase string.
func (s Severity) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Severity", Value: int(s)}
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into s via ParseSeverity.
func (s *Severity) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Severity", Data: data, Reason: "empty data"}
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &errors.UnmarshalError{Type: "Severity", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML serializes s as its canonical lowercase string.
func (s Severity) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Severity", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML parses a YAML scalar into s via ParseSeverity.
func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Severity", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Compile-time check that Severity implements model.Model.
var _ model.Model = (*Severity)(nil)

// RuleType distinguishes the kind of expression a CustomRule carries.
type RuleType int

const (
	// RuleTypePattern matches a candidate version against a core/pattern
	// glob (treating the version string as an opaque path with no "/"
	// separators).
	RuleTypePattern RuleType = iota

	// RuleTypeRange matches a candidate version against a dotted
	// wildcard range expression, the same syntax AllowedRange uses.
	RuleTypeRange
)

const (
	RuleTypePatternStr = "pattern"
	RuleTypeRangeStr   = "range"
)

// ParseRuleType converts a textual representation into a RuleType value.
func ParseRuleType(s string) (RuleType, error) {
	switch s {
	case RuleTypePatternStr:
		return RuleTypePattern, nil
	case RuleTypeRangeStr:
		return RuleTypeRange, nil
	default:
		return RuleTypePattern, &errors.ParseError{Type: "RuleType", Value: s}
	}
}

// String returns the canonical lowercase name of the RuleType.
func (r RuleType) String() string {
	switch r {
	case RuleTypePattern:
		return RuleTypePatternStr
	case RuleTypeRange:
		return RuleTypeRangeStr
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the defined constants.
func (r RuleType) Valid() bool {
	return r == RuleTypePattern || r == RuleTypeRange
}

// TypeName returns "RuleType".
func (r RuleType) TypeName() string {
	return "RuleType"
}

// Redacted returns the same value as String().
func (r RuleType) Redacted() string {
	return r.String()
}

// IsZero reports whether r is RuleTypePattern, the zero value.
func (r RuleType) IsZero() bool {
	return r == RuleTypePattern
}

// Equal reports whether other is an equal RuleType value.
func (r RuleType) Equal(other any) bool {
	switch v := other.(type) {
	case RuleType:
		return r == v
	case *RuleType:
		return v != nil && r == *v
	default:
		return false
	}
}

// Validate returns an error if r is not one of the defined constants.
func (r RuleType) Validate() error {
	if !r.Valid() {
		return &errors.ValidationError{Type: "RuleType", Reason: "invalid RuleType value", Value: int(r)}
	}
	return nil
}

// MarshalJSON serializes r as its canonical lowercase string.
func (r RuleType) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "RuleType", Value: int(r)}
	}
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON parses a JSON string into r via ParseRuleType.
func (r *RuleType) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "RuleType", Data: data, Reason: "empty data"}
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &errors.UnmarshalError{Type: "RuleType", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseRuleType(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML serializes r as its canonical lowercase string.
func (r RuleType) MarshalYAML() (any, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "RuleType", Value: int(r)}
	}
	return r.String(), nil
}

// UnmarshalYAML parses a YAML scalar into r via ParseRuleType.
func (r *RuleType) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "RuleType", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRuleType(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Compile-time check that RuleType implements model.Model.
var _ model.Model = (*RuleType)(nil)

// CustomRule is one additional constraint beyond Config's built-in rules.
type CustomRule struct {
	// Name labels the rule for diagnostics; defaults to "custom_rule" in
	// violation messages when empty.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Type selects how Expression is interpreted.
	Type RuleType `json:"type" yaml:"type"`

	// Severity controls whether a failing match is fatal.
	Severity Severity `json:"severity" yaml:"severity"`

	// Expression is the glob (RuleTypePattern) or dotted wildcard range
	// (RuleTypeRange) the candidate version is tested against.
	Expression string `json:"expression" yaml:"expression"`
}

// Matches reports whether candidate satisfies rule: for RuleTypePattern,
// candidate matches rule.Expression as a core/pattern glob; for
// RuleTypeRange, candidate matches rule.Expression as a dotted wildcard
// range.
func (rule CustomRule) Matches(candidate string) bool {
	switch rule.Type {
	case RuleTypeRange:
		return matchesWildcardRange(candidate, rule.Expression)
	default:
		return pattern.Match(rule.Expression, candidate)
	}
}
