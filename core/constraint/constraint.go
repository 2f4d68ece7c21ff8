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

// Package constraint implements the version constraint validator (C11):
// minimum/maximum bounds, an allowed range with ".x" wildcards, a
// blocklist, monotonic-increase enforcement, major-version approval
// gating, and custom pattern/range rules, each carrying an Error or
// Warning severity.
//
// Comparisons run on golang.org/x/mod/semver rather than
// core/model/semver: x/mod/semver operates directly on "v"-prefixed tag
// strings (Compare, Max, IsValid) without an intermediate parse step, and
// its Compare already ignores build metadata when establishing precedence,
// which is exactly the equality semantics spec.md §4.9 wants for the
// blocklist.
package constraint

import (
	"strings"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/change"
	"dirpx.dev/monover/core/pattern"
	"go.uber.org/multierr"
	semvermod "golang.org/x/mod/semver"
)

// Config is the set of constraint rules applied to one candidate version.
type Config struct {
	// Enabled gates the whole constraint set. A disabled Config always
	// passes validation without inspecting any other field.
	Enabled bool

	// MinimumVersion, if non-empty, rejects any candidate lower than it.
	MinimumVersion string

	// MaximumVersion, if non-empty, rejects any candidate higher than it.
	MaximumVersion string

	// AllowedRange, if non-empty, is a dotted version pattern where any
	// component may be the wildcard "x" (for example "1.2.x" or
	// "1.x.x"); a candidate must match every non-wildcard component
	// exactly.
	AllowedRange string

	// BlockedVersions lists exact versions (build metadata ignored) that
	// are never allowed as a candidate.
	BlockedVersions []string

	// RequireMonotonicIncrease rejects a candidate that does not compare
	// strictly greater than Previous.
	RequireMonotonicIncrease bool

	// RequireMajorApproval rejects a Major bump unless MajorApproved is
	// passed as true to Validate.
	RequireMajorApproval bool

	// CustomRules lists additional Pattern/Range rules beyond the
	// built-ins above.
	CustomRules []CustomRule
}

// Violation describes one failed or flagged constraint rule.
type Violation struct {
	// ConstraintName identifies which rule produced the violation (for
	// example "minimum_version", "blocked_versions", or a CustomRule's
	// configured name).
	ConstraintName string

	// Message is a human-readable explanation of the failure.
	Message string

	// Severity determines whether this Violation fails validation
	// (SeverityError) or merely decorates the result (SeverityWarning).
	Severity Severity
}

// Result is the outcome of Validate: every violation found, regardless of
// severity, plus whether validation passed overall.
type Result struct {
	// Violations lists every rule that did not pass, both errors and
	// warnings, in the order the rules were evaluated.
	Violations []Violation

	// Passed reports whether no Error-severity Violation was found. A
	// Result can have Passed=true while still carrying Warning
	// violations.
	Passed bool
}

// Validate checks candidate (and, for RequireMajorApproval, bump and
// majorApproved) against cfg. It returns a Result carrying every
// violation found of either severity, and a non-nil error combining
// (via multierr) every Error-severity violation — the signal core/version
// uses to decide whether the computation fails outright, per spec.md
// §4.7 step 9.
//
// Validate itself returns a non-nil error with no Result when candidate,
// or any non-empty bound configured in cfg, is not a well-formed SemVer
// string; this is a validator error, distinct from a constraint
// violation.
func Validate(candidate, previous string, bump change.Bump, majorApproved bool, cfg Config) (Result, error) {
	if !cfg.Enabled {
		return Result{Passed: true}, nil
	}

	candidateV := ensureV(candidate)
	if !semvermod.IsValid(candidateV) {
		return Result{}, &errors.EngineError{
			Code:   errors.EngineCodeMalformedVersion,
			Reason: "candidate version " + candidate + " is not a valid SemVer string",
		}
	}

	var violations []Violation
	var fatal error

	record := func(name, message string, severity Severity) {
		violations = append(violations, Violation{ConstraintName: name, Message: message, Severity: severity})
		if severity == SeverityError {
			fatal = multierr.Append(fatal, &errors.EngineError{
				Code:   errors.EngineCodeConstraintViolation,
				Reason: name + ": " + message,
			})
		}
	}

	if cfg.MinimumVersion != "" {
		if !semvermod.IsValid(ensureV(cfg.MinimumVersion)) {
			return Result{}, &errors.EngineError{Code: errors.EngineCodeMalformedVersion, Reason: "minimum_version " + cfg.MinimumVersion + " is not a valid SemVer string"}
		}
		if semvermod.Compare(candidateV, ensureV(cfg.MinimumVersion)) < 0 {
			record("minimum_version", candidate+" is below the configured minimum "+cfg.MinimumVersion, SeverityError)
		}
	}

	if cfg.MaximumVersion != "" {
		if !semvermod.IsValid(ensureV(cfg.MaximumVersion)) {
			return Result{}, &errors.EngineError{Code: errors.EngineCodeMalformedVersion, Reason: "maximum_version " + cfg.MaximumVersion + " is not a valid SemVer string"}
		}
		if semvermod.Compare(candidateV, ensureV(cfg.MaximumVersion)) > 0 {
			record("maximum_version", candidate+" exceeds the configured maximum "+cfg.MaximumVersion, SeverityError)
		}
	}

	if cfg.AllowedRange != "" && !matchesWildcardRange(candidate, cfg.AllowedRange) {
		record("allowed_range", candidate+" does not match the allowed range "+cfg.AllowedRange, SeverityError)
	}

	for _, blocked := range cfg.BlockedVersions {
		if !semvermod.IsValid(ensureV(blocked)) {
			continue
		}
		if semvermod.Compare(candidateV, ensureV(blocked)) == 0 {
			record("blocked_versions", candidate+" matches blocked version "+blocked, SeverityError)
		}
	}

	if cfg.RequireMonotonicIncrease && previous != "" {
		if !semvermod.IsValid(ensureV(previous)) {
			return Result{}, &errors.EngineError{Code: errors.EngineCodeMalformedVersion, Reason: "previous version " + previous + " is not a valid SemVer string"}
		}
		if semvermod.Compare(candidateV, ensureV(previous)) <= 0 {
			record("require_monotonic_increase", candidate+" does not increase over previous version "+previous, SeverityError)
		}
	}

	if cfg.RequireMajorApproval && bump == change.BumpMajor && !majorApproved {
		record("require_major_approval", "a major version bump to "+candidate+" requires explicit approval", SeverityError)
	}

	for _, rule := range cfg.CustomRules {
		if !rule.Matches(candidate) {
			name := rule.Name
			if name == "" {
				name = "custom_rule"
			}
			record(name, candidate+" failed custom rule "+rule.Type.String()+" "+rule.Expression, rule.Severity)
		}
	}

	return Result{Violations: violations, Passed: fatal == nil}, nil
}

// ensureV prepends a leading "v" to s if it does not already have one,
// the form golang.org/x/mod/semver requires.
func ensureV(s string) string {
	if strings.HasPrefix(s, "v") {
		return s
	}
	return "v" + s
}

// matchesWildcardRange reports whether candidate matches rangeExpr, a
// dotted pattern where any of the three leading components may be the
// wildcard "x" (case-insensitive). Prerelease and build metadata on
// candidate are ignored for this comparison; rangeExpr carries none.
func matchesWildcardRange(candidate, rangeExpr string) bool {
	candidate = strings.TrimPrefix(candidate, "v")
	core := candidate
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	candidateParts := strings.Split(core, ".")
	rangeParts := strings.Split(strings.TrimPrefix(rangeExpr, "v"), ".")

	for i, rp := range rangeParts {
		if strings.EqualFold(rp, "x") {
			continue
		}
		if i >= len(candidateParts) || candidateParts[i] != rp {
			return false
		}
	}
	return true
}
