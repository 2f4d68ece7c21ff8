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

package branch

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/git"
	"dirpx.dev/monover/core/model/semver"
	"dirpx.dev/monover/core/vcs"
)

// featureNameMaxLen bounds the sanitized form of a feature branch name, per
// the stable tiebreak adopted for the Open Question on feature-branch
// segment length.
const featureNameMaxLen = 50

var (
	releaseBranchPrefix = regexp.MustCompile(`(?i)^release[/\-]`)
	versionBranchExact  = regexp.MustCompile(`(?i)^v\d+\.\d+(\.\d+)?$`)
	featureUnsafeChars  = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
)

// Classification is the result of classifying a branch name into a Kind,
// carrying the extra data each kind needs: the parsed Version for KindRelease
// branches, and the sanitized Name for KindFeature branches.
type Classification struct {
	Kind    Kind
	Version semver.Version
	Name    string
}

// Classify determines the Kind of a branch from its name and, for release
// and feature branches, extracts the accompanying version or sanitized name.
//
// Classification is case-insensitive on the branch name itself:
//
//	"main", "master"                       -> KindMain
//	"dev", "develop", "development"         -> KindDev
//	"release/...", "release-...", "vX.Y[.Z]" -> KindRelease (Version extracted)
//	anything else                          -> KindFeature (Name sanitized)
func Classify(branchName string) (Classification, error) {
	lower := strings.ToLower(strings.TrimSpace(branchName))

	switch lower {
	case "main", "master":
		return Classification{Kind: KindMain}, nil
	case "dev", "develop", "development":
		return Classification{Kind: KindDev}, nil
	}

	if releaseBranchPrefix.MatchString(branchName) {
		rest := releaseBranchPrefix.ReplaceAllString(branchName, "")
		v, err := parseReleaseVersion(rest)
		if err != nil {
			return Classification{}, err
		}
		return Classification{Kind: KindRelease, Version: v}, nil
	}

	if versionBranchExact.MatchString(branchName) {
		rest := strings.TrimPrefix(strings.TrimPrefix(branchName, "v"), "V")
		v, err := parseReleaseVersion(rest)
		if err != nil {
			return Classification{}, err
		}
		return Classification{Kind: KindRelease, Version: v}, nil
	}

	return Classification{Kind: KindFeature, Name: sanitizeFeatureName(branchName)}, nil
}

// parseReleaseVersion parses the version segment of a release branch,
// padding a bare Major.Minor pair with an implicit ".0" patch component.
func parseReleaseVersion(s string) (semver.Version, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	if strings.Count(s, ".") == 1 {
		s += ".0"
	}
	return semver.ParseVersion(s)
}

// sanitizeFeatureName normalizes a feature branch name for safe use as a
// prerelease or file-path segment: runs of characters other than letters,
// digits, dots, underscores, and hyphens collapse to a single hyphen, and
// the result is capped at featureNameMaxLen visible characters.
func sanitizeFeatureName(name string) string {
	return SanitizeSegment(name)
}

// SanitizeSegment normalizes an arbitrary string for safe use as a
// prerelease or build-metadata segment: runs of characters other than
// letters, digits, dots, underscores, and hyphens collapse to a single
// hyphen, leading and trailing hyphens are trimmed, and the result is
// capped at featureNameMaxLen visible characters. It is exported so
// callers outside this package (the version calculator's branch-policy
// step, which layers its own prefix-stripping on top) can reuse the same
// normalization rules this package applies to feature branch names.
func SanitizeSegment(s string) string {
	sanitized := featureUnsafeChars.ReplaceAllString(s, "-")
	sanitized = strings.Trim(sanitized, "-")
	runes := []rune(sanitized)
	if len(runes) > featureNameMaxLen {
		runes = runes[:featureNameMaxLen]
	}
	return string(runes)
}

// VersionTag pairs a parsed SemVer value with the tag and commit it was
// discovered on. A zero-value CommitRef marks a synthetic tag: one that was
// never written to the repository but stands in for a configured baseline
// version when no matching tag exists yet.
type VersionTag struct {
	Name      git.TagName
	Version   semver.Version
	CommitRef git.Hash
}

// IsSynthetic reports whether this VersionTag represents a configured
// baseline rather than an actual tag resolved from the repository.
func (vt VersionTag) IsSynthetic() bool {
	return vt.CommitRef.IsZero()
}

// candidateTags lists every tag in repo whose friendly name passes match,
// each paired with its parsed version, sorted by descending SemVer
// precedence. Tags whose name does not parse as prefix+SemVer are skipped.
//
// When two candidates carry equal SemVer precedence, candidateTags breaks
// the tie by the committer time of the commit each tag points at, newest
// first, so that re-tagging the same version from a later commit (a
// corrected release, for instance) takes priority over the original. A tie
// on committer time as well falls back to the order ListTags returned them
// in, via sort's stability guarantee.
func candidateTags(ctx context.Context, repo vcs.VCS, prefix string, match func(name string) (rest string, ok bool)) ([]VersionTag, error) {
	tags, err := repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []VersionTag
	when := make(map[git.TagName]time.Time, len(tags))
	for _, tag := range tags {
		rest, ok := match(tag.Name.String())
		if !ok {
			continue
		}
		v, err := semver.ParseVersion(strings.TrimPrefix(strings.TrimPrefix(rest, "v"), "V"))
		if err != nil {
			continue
		}
		candidates = append(candidates, VersionTag{Name: tag.Name, Version: v, CommitRef: tag.Commit})
		if commit, cerr := repo.LookupCommit(ctx, tag.Commit.String()); cerr == nil {
			when[tag.Name] = commit.Committer.When
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.Version.Equal(b.Version) {
			return a.Version.Greater(b.Version)
		}
		return when[a.Name].After(when[b.Name])
	})
	return candidates, nil
}

// ProjectTag returns the latest tag scoped to project with the configured
// tag prefix — a tag whose friendly name starts with "{project}-{prefix}"
// or "{project}/{prefix}", case-insensitively. It returns the zero
// VersionTag and a TagNotFound *errors.EngineError when no such tag exists.
func ProjectTag(ctx context.Context, repo vcs.VCS, project, prefix string) (VersionTag, error) {
	lowerA := strings.ToLower(project + "-" + prefix)
	lowerB := strings.ToLower(project + "/" + prefix)

	candidates, err := candidateTags(ctx, repo, prefix, func(name string) (string, bool) {
		lowerName := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lowerName, lowerA):
			return name[len(lowerA):], true
		case strings.HasPrefix(lowerName, lowerB):
			return name[len(lowerB):], true
		default:
			return "", false
		}
	})
	if err != nil {
		return VersionTag{}, err
	}
	if len(candidates) == 0 {
		return VersionTag{}, &errors.EngineError{
			Code:    errors.EngineCodeTagNotFound,
			Project: project,
			Reason:  fmt.Sprintf("no project tag found with prefix %q", prefix),
		}
	}
	return candidates[0], nil
}

// GlobalTag returns the latest repository-wide tag with the configured tag
// prefix (a tag whose friendly name simply starts with prefix, as opposed to
// being scoped to a specific project). When no global tag exists but
// baseVersion is non-zero, GlobalTag returns a synthetic VersionTag carrying
// baseVersion with a zero CommitRef, representing a configured floor rather
// than an actual release. When no global tag exists and baseVersion is the
// zero value, GlobalTag returns a TagNotFound *errors.EngineError.
func GlobalTag(ctx context.Context, repo vcs.VCS, prefix string, baseVersion semver.Version) (VersionTag, error) {
	lowerPrefix := strings.ToLower(prefix)

	candidates, err := candidateTags(ctx, repo, prefix, func(name string) (string, bool) {
		lowerName := strings.ToLower(name)
		if !strings.HasPrefix(lowerName, lowerPrefix) {
			return "", false
		}
		return name[len(prefix):], true
	})
	if err != nil {
		return VersionTag{}, err
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}

	if !baseVersion.IsZero() {
		return VersionTag{Version: baseVersion}, nil
	}

	return VersionTag{}, &errors.EngineError{
		Code:   errors.EngineCodeTagNotFound,
		Reason: fmt.Sprintf("no global tag found with prefix %q", prefix),
	}
}

// CreateTag writes an annotated tag named name at the repository's current
// head with the given message. It refuses idempotently: if a tag named name
// already exists, CreateTag returns a TagAlreadyExists *errors.EngineError
// without attempting to write anything.
func CreateTag(ctx context.Context, repo vcs.VCS, name git.TagName, message string) error {
	exists, err := repo.TagExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return &errors.EngineError{
			Code:   errors.EngineCodeTagAlreadyExists,
			Reason: "tag " + name.String() + " already exists",
		}
	}

	branchName, err := repo.CurrentBranchName(ctx)
	if err != nil {
		return err
	}
	head, err := repo.LookupCommit(ctx, branchName)
	if err != nil {
		return err
	}

	return repo.CreateAnnotatedTag(ctx, name, message, head.Hash)
}
