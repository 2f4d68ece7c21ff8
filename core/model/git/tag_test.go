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

package git_test

import (
	"strings"
	"testing"

	"dirpx.dev/monover/core/model/git"
)

// =============================================================================
// TagName Tests
// =============================================================================

func TestParseTagName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    git.TagName
		wantErr bool
	}{
		{"valid_simple_version", "v1.2.3", "v1.2.3", false},
		{"valid_hierarchical", "moduleA/v1.2.3", "moduleA/v1.2.3", false},
		{"valid_custom", "release-2023-01-15", "release-2023-01-15", false},
		{"valid_single_char", "v", "v", false},
		{"valid_with_whitespace_trimmed", "  v1.2.3  ", "v1.2.3", false},
		{"empty_string", "", "", false},
		{"whitespace_only", "   ", "", false},
		{"too_long", strings.Repeat("a", 257), "", true},
		{"contains_control_char", "v1.2.3\x00", "", true},
		{"contains_non_ascii", "v1.2.3привет", "", true},
		{"contains_space", "v1 2 3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := git.ParseTagName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTagName() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseTagName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagName_String(t *testing.T) {
	tests := []struct {
		name string
		tn   git.TagName
		want string
	}{
		{"simple_version", "v1.2.3", "v1.2.3"},
		{"hierarchical", "moduleA/v1.2.3", "moduleA/v1.2.3"},
		{"zero_value", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tn.String(); got != tt.want {
				t.Errorf("TagName.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagName_IsZero(t *testing.T) {
	tests := []struct {
		name string
		tn   git.TagName
		want bool
	}{
		{"zero_value", "", true},
		{"non_zero", "v1.2.3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tn.IsZero(); got != tt.want {
				t.Errorf("TagName.IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagName_Equal(t *testing.T) {
	tests := []struct {
		name  string
		tn    git.TagName
		other git.TagName
		want  bool
	}{
		{"equal_simple", "v1.2.3", "v1.2.3", true},
		{"not_equal", "v1.2.3", "v1.2.4", false},
		{"case_sensitive", "v1.2.3", "V1.2.3", false},
		{"both_zero", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tn.Equal(tt.other); got != tt.want {
				t.Errorf("TagName.Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagName_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tn      git.TagName
		wantErr bool
	}{
		{"valid_simple", "v1.2.3", false},
		{"valid_hierarchical", "moduleA/v1.2.3", false},
		{"valid_custom", "release-2023-01-15", false},
		{"valid_with_special_chars", "v1.2.3-rc.1+build.42", false},
		{"valid_zero", "", false},
		{"invalid_too_long", git.TagName(strings.Repeat("a", 257)), true},
		{"invalid_control_char", "v1.2.3\x00", true},
		{"invalid_non_ascii", "v1.2.3привет", true},
		{"invalid_whitespace", "  v1.2.3  ", true},
		{"invalid_space_in_middle", "v1 2 3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tn.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("TagName.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// Tag Tests
// =============================================================================

func TestNewTag(t *testing.T) {
	hash1 := git.Hash("a1b2c3d4e5f67890abcdef1234567890abcdef12")
	hash2 := git.Hash("1234567890abcdef1234567890abcdef12345678")

	tests := []struct {
		name      string
		tagName   git.TagName
		object    git.Hash
		commit    git.Hash
		annotated bool
		message   string
		wantErr   bool
	}{
		{"valid_lightweight", "v1.2.3", hash1, hash1, false, "", false},
		{"valid_annotated", "v2.0.0", hash1, hash2, true, "Release v2.0.0", false},
		{"invalid_empty_name", "", hash1, hash1, false, "", true},
		{"invalid_lightweight_with_message", "v1.0.0", hash1, hash1, false, "oops", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := git.NewTag(tt.tagName, tt.object, tt.commit, tt.annotated, tt.message)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTag() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.Name != tt.tagName {
				t.Errorf("NewTag().Name = %v, want %v", got.Name, tt.tagName)
			}
		})
	}
}

func TestTag_String(t *testing.T) {
	hash := git.Hash("a1b2c3d4e5f67890abcdef1234567890abcdef12")

	tag := git.Tag{Name: "v1.2.3", Object: hash, Commit: hash, Annotated: false}

	str := tag.String()
	if !strings.Contains(str, "v1.2.3") {
		t.Errorf("Tag.String() doesn't contain tag name: %s", str)
	}
	if !strings.Contains(str, "Annotated:false") {
		t.Errorf("Tag.String() doesn't contain Annotated flag: %s", str)
	}
}

func TestTag_IsZero(t *testing.T) {
	tests := []struct {
		name string
		tag  git.Tag
		want bool
	}{
		{"zero_value", git.Tag{}, true},
		{
			"non_zero",
			git.Tag{Name: "v1.2.3", Object: "a1b2c3d4e5f67890abcdef1234567890abcdef12", Commit: "a1b2c3d4e5f67890abcdef1234567890abcdef12"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag.IsZero(); got != tt.want {
				t.Errorf("Tag.IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTag_Equal(t *testing.T) {
	hash1 := git.Hash("a1b2c3d4e5f67890abcdef1234567890abcdef12")
	hash2 := git.Hash("1234567890abcdef1234567890abcdef12345678")

	tests := []struct {
		name string
		tag1 git.Tag
		tag2 git.Tag
		want bool
	}{
		{
			"equal_lightweight",
			git.Tag{Name: "v1.2.3", Object: hash1, Commit: hash1},
			git.Tag{Name: "v1.2.3", Object: hash1, Commit: hash1},
			true,
		},
		{
			"different_name",
			git.Tag{Name: "v1.2.3", Object: hash1, Commit: hash1},
			git.Tag{Name: "v1.2.4", Object: hash1, Commit: hash1},
			false,
		},
		{
			"different_hashes",
			git.Tag{Name: "v1.2.3", Object: hash1, Commit: hash1},
			git.Tag{Name: "v1.2.3", Object: hash2, Commit: hash2},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag1.Equal(tt.tag2); got != tt.want {
				t.Errorf("Tag.Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTag_Validate(t *testing.T) {
	hash1 := git.Hash("a1b2c3d4e5f67890abcdef1234567890abcdef12")
	hash2 := git.Hash("1234567890abcdef1234567890abcdef12345678")

	tests := []struct {
		name    string
		tag     git.Tag
		wantErr bool
	}{
		{"valid_lightweight", git.Tag{Name: "v1.2.3", Object: hash1, Commit: hash1, Annotated: false, Message: ""}, false},
		{"valid_annotated", git.Tag{Name: "v2.0.0", Object: hash1, Commit: hash2, Annotated: true, Message: "Release v2.0.0"}, false},
		{"invalid_empty_name", git.Tag{Name: "", Object: hash1, Commit: hash1}, true},
		{"invalid_empty_object", git.Tag{Name: "v1.2.3", Object: "", Commit: hash1}, true},
		{"invalid_empty_commit", git.Tag{Name: "v1.2.3", Object: hash1, Commit: ""}, true},
		{
			"invalid_lightweight_with_message",
			git.Tag{Name: "v1.0.0", Object: hash1, Commit: hash1, Annotated: false, Message: "This should not be here"},
			true,
		},
		{
			"invalid_message_too_long",
			git.Tag{Name: "v1.0.0", Object: hash1, Commit: hash1, Annotated: true, Message: strings.Repeat("a", 65537)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tag.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Tag.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTag_CommonScenarios(t *testing.T) {
	hash1 := git.Hash("a1b2c3d4e5f67890abcdef1234567890abcdef12")
	hash2 := git.Hash("1234567890abcdef1234567890abcdef12345678")

	scenarios := []struct {
		name  string
		tag   git.Tag
		valid bool
	}{
		{"semver_lightweight", git.Tag{Name: "v1.2.3", Object: hash1, Commit: hash1}, true},
		{"semver_prerelease", git.Tag{Name: "v2.0.0-rc.1", Object: hash1, Commit: hash1}, true},
		{"hierarchical_tag", git.Tag{Name: "moduleA/v1.2.3", Object: hash1, Commit: hash1}, true},
		{"custom_tag", git.Tag{Name: "release-2023-01-15", Object: hash1, Commit: hash1}, true},
		{
			"annotated_with_message",
			git.Tag{Name: "v1.0.0", Object: hash1, Commit: hash2, Annotated: true, Message: "First stable release\n\nIncludes all features from beta."},
			true,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			err := sc.tag.Validate()
			if sc.valid && err != nil {
				t.Errorf("Expected valid tag, got error: %v", err)
			}
			if !sc.valid && err == nil {
				t.Errorf("Expected invalid tag, got nil error")
			}
		})
	}
}
