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

// Package version implements the version calculator (C9), the component
// every other piece of monover's engine ultimately serves: given a
// project's options and a repository, it resolves the project's baseline
// version, detects whether anything relevant changed since that baseline,
// derives a bump type, applies the branch's release policy, enriches the
// result with git-integration build metadata, and validates the candidate
// against configured constraints.
package version

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/monover/core/branch"
	"dirpx.dev/monover/core/changedetect"
	"dirpx.dev/monover/core/commitanalysis"
	"dirpx.dev/monover/core/constraint"
	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/calver"
	"dirpx.dev/monover/core/model/change"
	"dirpx.dev/monover/core/model/git"
	"dirpx.dev/monover/core/model/semver"
	"dirpx.dev/monover/core/vcs"
	"go.uber.org/multierr"
)

var featureBranchPrefix = regexp.MustCompile(`(?i)^(feature|bugfix|hotfix)/`)

// Calculate resolves opts.ProjectName's version against repo's current
// state, implementing the ten-step algorithm described by monover's
// version-calculation contract: skip rules, a forced-version override,
// baseline resolution (including a configured base-version floor),
// the initial-repository short circuit, change detection, bump-type
// derivation, branch-kind release policy, git-integration metadata, and
// constraint validation.
func Calculate(ctx context.Context, repo vcs.VCS, opts Options) (Result, error) {
	branchName, err := repo.CurrentBranchName(ctx)
	if err != nil {
		return Result{}, err
	}
	head, err := repo.LookupCommit(ctx, branchName)
	if err != nil {
		return Result{}, err
	}

	prefix := opts.tagPrefix()
	projectTag, projErr := branch.ProjectTag(ctx, repo, opts.ProjectName, prefix)
	hasProject := projErr == nil
	globalTag, globErr := branch.GlobalTag(ctx, repo, prefix, semver.Version{})
	hasGlobal := globErr == nil

	// Step 1: skip rules. These take priority over everything else,
	// including a forced version.
	if opts.IsTestProject && opts.SkipTestProjects {
		return unchangedResult(opts, pickBaseline(hasProject, projectTag, hasGlobal, globalTag), "test project, skipped by configuration"), nil
	}
	if !opts.IsPackable && opts.SkipNonPackable {
		return unchangedResult(opts, pickBaseline(hasProject, projectTag, hasGlobal, globalTag), "non-packable project, skipped by configuration"), nil
	}

	// Step 2: forced version override.
	if opts.ForceVersion != "" {
		parsed, _ := semver.ParseVersion(opts.ForceVersion)
		return Result{
			VersionString: opts.ForceVersion,
			ParsedSemVer:  parsed,
			Changed:       true,
			Reason:        "forced version from configuration",
			Scheme:        opts.Scheme,
		}, nil
	}

	// Step 3: base-version floor. A configured BaseVersion wins outright
	// until a tag at exactly that version has been created, regardless of
	// any other tag already present.
	if opts.BaseVersion != "" {
		baseV, err := semver.ParseVersion(opts.BaseVersion)
		if err != nil {
			return Result{}, &errors.EngineError{
				Code:    errors.EngineCodeMalformedVersion,
				Project: opts.ProjectName,
				Reason:  "configured baseVersion " + opts.BaseVersion + " is not valid SemVer",
				Cause:   err,
			}
		}
		matched := (hasProject && projectTag.Version.Equal(baseV)) || (hasGlobal && globalTag.Version.Equal(baseV))
		if !matched {
			return finalizeWith(ctx, repo, opts, branchName, head.Hash, "", baseV, change.BumpNone,
				"first change with new base version from configuration")
		}
	}

	baseline := pickBaseline(hasProject, projectTag, hasGlobal, globalTag)

	// Step 4: initial-repository short circuit.
	if baseline.IsSynthetic() {
		return finalizeWith(ctx, repo, opts, branchName, head.Hash, "", baseline.Version, change.BumpNone, "initial repository")
	}

	// Step 5: change detection.
	detected, err := changedetect.Detect(ctx, repo, baseline.CommitRef, head.Hash, opts.ChangeDetection)
	if err != nil {
		return Result{}, err
	}
	hasOverride := opts.DefaultIncrement != change.BumpNone
	if len(detected.RelevantPaths) == 0 && !hasOverride {
		return unchangedResult(opts, baseline, "no changes detected since baseline"), nil
	}

	// Step 6: bump-type derivation, in priority order: explicit override,
	// conventional-commit analysis, file-pattern classification, default
	// patch.
	bump := opts.DefaultIncrement
	if bump == change.BumpNone && opts.ConventionalCommits.Enabled {
		commits, cerr := repo.CommitsBetween(ctx, baseline.CommitRef, head.Hash)
		if cerr != nil {
			return Result{}, cerr
		}
		bump = commitanalysis.MaxBump(commitanalysis.AnalyzeCommits(commits, opts.ConventionalCommits))
	}
	if bump == change.BumpNone {
		bump = detected.Classification.RequiredBumpType()
	}
	if bump == change.BumpNone {
		bump = change.BumpPatch
	}

	previous := baseline.Version.String()

	if opts.Scheme == SchemeCalVer {
		return finalizeCalVer(ctx, repo, opts, branchName, head.Hash, baseline, previous)
	}

	// Step 7: branch-kind release policy.
	kind, err := branch.Classify(branchName)
	if err != nil {
		return Result{}, err
	}

	var candidate semver.Version
	var reason string
	var height int

	switch kind.Kind {
	case branch.KindMain:
		candidate, reason = applyMainPolicy(baseline.Version, bump, opts)

	case branch.KindRelease:
		candidate = kind.Version
		if strings.Contains(strings.ToLower(branchName), "stable") {
			reason = "stable release"
		} else {
			candidate.Prerelease = "rc.1"
			reason = "release candidate"
		}

	case branch.KindDev:
		height, err = repo.CommitHeight(ctx, baseline.CommitRef, head.Hash)
		if err != nil {
			return Result{}, err
		}
		candidate = semver.Version{
			Major:      baseline.Version.Major,
			Minor:      baseline.Version.Minor,
			Patch:      baseline.Version.Patch + 1,
			Prerelease: "dev." + strconv.Itoa(height),
		}
		reason = "development branch prerelease"

	default: // branch.KindFeature
		height, err = repo.CommitHeight(ctx, baseline.CommitRef, head.Hash)
		if err != nil {
			return Result{}, err
		}
		sanitized := branch.SanitizeSegment(featureBranchPrefix.ReplaceAllString(branchName, ""))
		candidate = semver.Version{
			Major:      baseline.Version.Major,
			Minor:      baseline.Version.Minor,
			Patch:      baseline.Version.Patch + 1,
			Prerelease: sanitized + "." + strconv.Itoa(height),
		}
		reason = "feature branch prerelease"
	}

	result, err := finalizeWith(ctx, repo, opts, branchName, head.Hash, previous, candidate, bump, reason)
	if err != nil {
		return Result{}, err
	}
	result.CommitHeight = height
	return result, nil
}

// pickBaseline resolves the baseline VersionTag from whichever of a
// project-scoped tag and a global tag exist, per the precedence: both
// present compares by (Major, Minor) with ties going to the project tag;
// only one present uses it; neither present synthesizes SemVer(0, 1, 0).
func pickBaseline(hasProject bool, projectTag branch.VersionTag, hasGlobal bool, globalTag branch.VersionTag) branch.VersionTag {
	switch {
	case hasProject && hasGlobal:
		pv, gv := projectTag.Version, globalTag.Version
		if pv.Major != gv.Major {
			if pv.Major > gv.Major {
				return projectTag
			}
			return globalTag
		}
		if pv.Minor != gv.Minor {
			if pv.Minor > gv.Minor {
				return projectTag
			}
			return globalTag
		}
		return projectTag
	case hasProject:
		return projectTag
	case hasGlobal:
		return globalTag
	default:
		return branch.VersionTag{Version: semver.Version{Major: 0, Minor: 1, Patch: 0}}
	}
}

// unchangedResult builds a Result reporting that baseline's version stands
// unchanged, with no metadata enrichment or constraint validation: these
// short-circuit paths never produce a new release.
func unchangedResult(opts Options, baseline branch.VersionTag, reason string) Result {
	return Result{
		VersionString: baseline.Version.String(),
		ParsedSemVer:  baseline.Version,
		Changed:       false,
		Reason:        reason,
		Scheme:        opts.Scheme,
	}
}

// finalizeWith applies git-integration build metadata to candidate, runs
// constraint validation against it (with previous, the resolved baseline's
// version string, feeding RequireMonotonicIncrease), and emits the final
// Result. It is the common tail of every path that produces a genuinely
// new version.
func finalizeWith(ctx context.Context, repo vcs.VCS, opts Options, branchName string, head git.Hash, previous string, candidate semver.Version, bump change.Bump, reason string) (Result, error) {
	var metaParts []string
	if opts.GitIntegration.IncludeBranchInMetadata {
		metaParts = append(metaParts, branch.SanitizeSegment(branchName))
	}
	if opts.GitIntegration.IncludeShortHashInMetadata {
		metaParts = append(metaParts, "sha."+head.Short())
	}
	if len(metaParts) > 0 {
		candidate.Metadata = strings.Join(metaParts, ".")
	}

	cresult, err := constraint.Validate(candidate.String(), previous, bump, opts.MajorApproved, opts.Constraints)
	if err != nil {
		return Result{}, err
	}
	if !cresult.Passed {
		var combined error
		for _, v := range cresult.Violations {
			if v.Severity == constraint.SeverityError {
				combined = multierr.Append(combined, fmt.Errorf("%s: %s", v.ConstraintName, v.Message))
			}
		}
		return Result{}, &errors.EngineError{
			Code:    errors.EngineCodeConstraintViolation,
			Project: opts.ProjectName,
			Reason:  combined.Error(),
		}
	}

	var warnings []constraint.Violation
	for _, v := range cresult.Violations {
		if v.Severity == constraint.SeverityWarning {
			warnings = append(warnings, v)
		}
	}

	return Result{
		VersionString: candidate.String(),
		ParsedSemVer:  candidate,
		Changed:       true,
		Reason:        reason,
		Scheme:        opts.Scheme,
		Warnings:      warnings,
	}, nil
}

// applyMainPolicy implements Step 7's Main-branch rule: if baseline carries
// a recognized "{alpha|beta|rc}.N" prerelease, increment N in place;
// otherwise apply bump to baseline's release components (degrading to a
// plain patch bump when baseline carries any other, unrecognized
// prerelease) and, if opts.PrereleaseType is configured, attach a fresh
// "{channel}.1" identifier.
func applyMainPolicy(baseline semver.Version, bump change.Bump, opts Options) (semver.Version, string) {
	if channelName, n, ok := parsePrereleaseChannel(baseline.Prerelease); ok {
		next := baseline
		next.Metadata = ""
		next.Prerelease = channelName + "." + strconv.Itoa(n+1)
		return next, "incrementing " + channelName + " prerelease"
	}

	effectiveBump := bump
	if baseline.Prerelease != "" {
		effectiveBump = change.BumpPatch
	}
	bumped := applyBump(baseline, effectiveBump)

	if opts.PrereleaseType == PrereleaseNone {
		return bumped, "incrementing " + effectiveBump.String() + " version"
	}
	channelName := opts.PrereleaseType.channel(opts.PrereleaseCustom)
	bumped.Prerelease = channelName + ".1"
	return bumped, "incrementing " + effectiveBump.String() + " version with " + channelName + " prerelease"
}

// applyBump returns a fresh release version with the component selected by
// bump incremented and every lower component reset to zero. BumpNone
// returns v unchanged, with prerelease and metadata stripped.
func applyBump(v semver.Version, bump change.Bump) semver.Version {
	switch bump {
	case change.BumpMajor:
		return semver.Version{Major: v.Major + 1}
	case change.BumpMinor:
		return semver.Version{Major: v.Major, Minor: v.Minor + 1}
	case change.BumpPatch:
		return semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	}
}

// prereleaseChannelPattern matches a dot-separated "{channel}.{number}"
// prerelease identifier with no further segments.
var prereleaseChannelPattern = regexp.MustCompile(`^([a-zA-Z]+)\.(\d+)$`)

// parsePrereleaseChannel reports whether prerelease is a recognized
// "{alpha|beta|rc}.N" identifier, returning the channel name and N.
func parsePrereleaseChannel(prerelease string) (channel string, n int, ok bool) {
	m := prereleaseChannelPattern.FindStringSubmatch(prerelease)
	if m == nil {
		return "", 0, false
	}
	lower := strings.ToLower(m[1])
	if lower != PrereleaseAlphaStr && lower != PrereleaseBetaStr && lower != PrereleaseRCStr {
		return "", 0, false
	}
	num, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return lower, num, true
}

// finalizeCalVer implements the CalVer scheme branch-agnostically: the
// previous version's SemVer components are read back as a CalVer value
// (Major as Year, Minor as Period, Patch as Patch), the next CalVer value
// is computed for the current wall-clock date, and projected back onto a
// semver.Version for metadata enrichment and constraint validation.
func finalizeCalVer(ctx context.Context, repo vcs.VCS, opts Options, branchName string, head git.Hash, baseline branch.VersionTag, previous string) (Result, error) {
	existing := &calver.Version{Year: baseline.Version.Major, Period: baseline.Version.Minor, Patch: baseline.Version.Patch, Format: opts.CalVer.Format}
	if baseline.IsSynthetic() {
		existing = nil
	}

	now := time.Now().UTC()
	next := calver.Compute(opts.CalVer, now, existing)
	reason := "computed CalVer version, patch incremented"
	if calver.ShouldIncrement(opts.CalVer, now, existing) {
		reason = "computed CalVer version for new period"
	}

	result, err := finalizeWith(ctx, repo, opts, branchName, head, previous, next.ToSemVer(), change.BumpNone, reason)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
