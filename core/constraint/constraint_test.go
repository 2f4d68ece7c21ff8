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

package constraint_test

import (
	"testing"

	"dirpx.dev/monover/core/constraint"
	"dirpx.dev/monover/core/model/change"
)

func TestValidateDisabledAlwaysPasses(t *testing.T) {
	result, err := constraint.Validate("9.9.9", "", change.BumpMajor, false, constraint.Config{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Passed {
		t.Error("disabled Config should always pass")
	}
}

func TestValidateMinimumMaximum(t *testing.T) {
	cfg := constraint.Config{Enabled: true, MinimumVersion: "1.0.0", MaximumVersion: "2.0.0"}

	result, err := constraint.Validate("0.9.0", "", change.BumpNone, false, cfg)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Passed {
		t.Error("0.9.0 should fail minimum_version 1.0.0")
	}

	result, err = constraint.Validate("2.5.0", "", change.BumpNone, false, cfg)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Passed {
		t.Error("2.5.0 should fail maximum_version 2.0.0")
	}

	result, err = constraint.Validate("1.5.0", "", change.BumpNone, false, cfg)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !result.Passed {
		t.Error("1.5.0 should pass between 1.0.0 and 2.0.0")
	}
}

func TestValidateAllowedRange(t *testing.T) {
	cfg := constraint.Config{Enabled: true, AllowedRange: "1.2.x"}

	if result, _ := constraint.Validate("1.2.9", "", change.BumpNone, false, cfg); !result.Passed {
		t.Error("1.2.9 should match allowed range 1.2.x")
	}
	if result, _ := constraint.Validate("1.3.0", "", change.BumpNone, false, cfg); result.Passed {
		t.Error("1.3.0 should not match allowed range 1.2.x")
	}
}

func TestValidateBlockedVersions(t *testing.T) {
	cfg := constraint.Config{Enabled: true, BlockedVersions: []string{"2.3.0"}}

	result, err := constraint.Validate("2.3.0", "", change.BumpNone, false, cfg)
	if err == nil {
		t.Fatal("Validate should return a combined error for a blocked candidate")
	}
	if result.Passed {
		t.Error("2.3.0 should fail, it is blocked")
	}
}

func TestValidateMonotonicIncrease(t *testing.T) {
	cfg := constraint.Config{Enabled: true, RequireMonotonicIncrease: true}

	if result, _ := constraint.Validate("1.0.0", "1.0.1", change.BumpNone, false, cfg); result.Passed {
		t.Error("1.0.0 should fail monotonic increase over 1.0.1")
	}
	if result, _ := constraint.Validate("1.0.2", "1.0.1", change.BumpNone, false, cfg); !result.Passed {
		t.Error("1.0.2 should pass monotonic increase over 1.0.1")
	}
}

func TestValidateRequireMajorApproval(t *testing.T) {
	cfg := constraint.Config{Enabled: true, RequireMajorApproval: true}

	if result, _ := constraint.Validate("2.0.0", "", change.BumpMajor, false, cfg); result.Passed {
		t.Error("unapproved major bump should fail")
	}
	if result, _ := constraint.Validate("2.0.0", "", change.BumpMajor, true, cfg); !result.Passed {
		t.Error("approved major bump should pass")
	}
}

func TestValidateMalformedCandidate(t *testing.T) {
	_, err := constraint.Validate("not-a-version", "", change.BumpNone, false, constraint.Config{Enabled: true})
	if err == nil {
		t.Fatal("Validate should error on a malformed candidate version")
	}
}

func TestValidateCustomRulePattern(t *testing.T) {
	// CustomRule with RuleTypePattern is an allow-list: the candidate must
	// match Expression, the same polarity as AllowedRange.
	cfg := constraint.Config{
		Enabled: true,
		CustomRules: []constraint.CustomRule{
			{Name: "stable_only", Type: constraint.RuleTypePattern, Severity: constraint.SeverityWarning, Expression: "*.0.0"},
		},
	}
	result, err := constraint.Validate("1.2.3", "", change.BumpNone, false, cfg)
	if err != nil {
		t.Fatalf("warning-severity custom rule should not fail Validate: %v", err)
	}
	if !result.Passed {
		t.Error("warning-severity violation should not fail Passed")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("Violations = %v, want 1 entry", result.Violations)
	}

	result, err = constraint.Validate("4.0.0", "", change.BumpNone, false, cfg)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(result.Violations) != 0 {
		t.Errorf("4.0.0 should satisfy custom rule *.0.0, got violations %v", result.Violations)
	}
}
