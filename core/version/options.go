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
	"dirpx.dev/monover/core/changedetect"
	"dirpx.dev/monover/core/commitanalysis"
	"dirpx.dev/monover/core/constraint"
	"dirpx.dev/monover/core/model/calver"
	"dirpx.dev/monover/core/model/change"
)

// GitIntegrationConfig controls whether build metadata carries branch and
// commit identity alongside the computed version core.
type GitIntegrationConfig struct {
	// IncludeBranchInMetadata appends the sanitized current branch name
	// as a build-metadata segment.
	IncludeBranchInMetadata bool

	// IncludeShortHashInMetadata appends "sha.{7 hex chars}" of the
	// current head commit as a build-metadata segment.
	IncludeShortHashInMetadata bool
}

// Options configures a single project's version calculation.
type Options struct {
	// ProjectName identifies the project within a monorepo; it scopes
	// project-specific tags ("{name}-v1.2.3") and change detection.
	ProjectName string

	// TagPrefix is the version-tag prefix, "v" by default.
	TagPrefix string

	// Scheme selects SemVer or CalVer output.
	Scheme Scheme

	// CalVer configures calendar versioning; only consulted when Scheme
	// is SchemeCalVer.
	CalVer calver.Config

	// PrereleaseType selects the prerelease channel Calculate attaches
	// to a Main-branch bump. Ignored for Dev, Release, and Feature
	// branches, which each derive their own prerelease form.
	PrereleaseType PrereleaseType

	// PrereleaseCustom names the channel used when PrereleaseType is
	// PrereleaseCustom.
	PrereleaseCustom string

	// BaseVersion, if set, is a configured floor version. When no tag
	// exists yet at exactly this version, Calculate short-circuits to
	// this value verbatim as the first release under the new baseline.
	BaseVersion string

	// ForceVersion, if set, is returned verbatim, bypassing every other
	// rule except the skip rules.
	ForceVersion string

	// IsTestProject marks the project as test-only code.
	IsTestProject bool

	// SkipTestProjects, combined with IsTestProject, skips calculation
	// for this project.
	SkipTestProjects bool

	// IsPackable reports whether the project produces a publishable
	// artifact.
	IsPackable bool

	// SkipNonPackable, combined with a false IsPackable, skips
	// calculation for this project.
	SkipNonPackable bool

	// DefaultIncrement, when non-zero, overrides both conventional-commit
	// analysis and file-pattern classification as the bump type.
	DefaultIncrement change.Bump

	// ChangeDetection scopes Detect to this project's own paths,
	// dependency paths, and any extra monitor globs.
	ChangeDetection changedetect.Config

	// ConventionalCommits configures commit-message bump derivation.
	ConventionalCommits commitanalysis.Config

	// Constraints configures post-calculation validation.
	Constraints constraint.Config

	// MajorApproved satisfies Constraints.RequireMajorApproval when
	// true.
	MajorApproved bool

	// GitIntegration controls build-metadata enrichment.
	GitIntegration GitIntegrationConfig
}

// tagPrefix returns opts.TagPrefix, defaulting to "v".
func (opts Options) tagPrefix() string {
	if opts.TagPrefix == "" {
		return "v"
	}
	return opts.TagPrefix
}
