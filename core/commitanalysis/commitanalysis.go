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

// Package commitanalysis derives a version Bump from a commit's message,
// bridging the Conventional Commits grammar parsed by
// core/model/conventional with the Bump vocabulary the version calculator
// applies. It also reduces a range of per-commit bumps down to the single
// decision a module's release needs, via MaxBump.
package commitanalysis

import (
	"strings"

	"dirpx.dev/monover/core/model/change"
	"dirpx.dev/monover/core/model/conventional"
	"dirpx.dev/monover/core/model/git"
)

// Config governs how AnalyzeCommit classifies a commit header once it has
// been parsed as a Conventional Commit.
//
// Breaking changes (the "!" header marker or a BREAKING CHANGE / BREAKING-
// CHANGE footer) always resolve to BumpMajor regardless of Config; the
// pattern lists below only apply to non-breaking commits. Each pattern is a
// case-insensitive prefix test against the commit's reconstructed header
// ("type(scope)", without the trailing colon or subject), so a pattern of
// "feat" matches both "feat" and "feat(api)", while "feat(api)" matches
// only the scoped form.
//
// Patterns are tested in a fixed precedence: Ignore, then Major, then
// Minor, then Patch. A commit whose header matches none of the configured
// patterns falls back to BumpPatch, the same catch-all monover applies to
// a commit that does not parse as a Conventional Commit at all.
type Config struct {
	// Enabled turns Conventional Commit analysis on. When false,
	// AnalyzeCommit does not attempt to parse the header at all and
	// every commit resolves to a flat BumpPatch; this mirrors monover's
	// file-pattern-only change detection mode for repositories that do
	// not follow Conventional Commits.
	Enabled bool

	// MajorPatterns lists header prefixes that resolve to BumpMajor.
	MajorPatterns []string

	// MinorPatterns lists header prefixes that resolve to BumpMinor.
	// "feat" is the conventional default.
	MinorPatterns []string

	// PatchPatterns lists header prefixes that resolve to BumpPatch.
	// "fix" and "perf" are the conventional defaults.
	PatchPatterns []string

	// IgnorePatterns lists header prefixes that resolve to BumpNone and
	// mark the commit as ignorable for versioning purposes. "docs",
	// "style", "test", "chore", "build", and "ci" are the conventional
	// defaults.
	IgnorePatterns []string
}

// DefaultConfig returns the Config monover applies when a project does not
// override commit-analysis settings: the standard Conventional Commits
// type vocabulary split into minor (feat), patch (fix, perf), and ignore
// (docs, style, test, chore, build, ci) buckets, with no extra major
// patterns beyond the breaking-change markers ParseMessage already
// detects.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		MinorPatterns:  []string{conventional.FeatStr},
		PatchPatterns:  []string{conventional.FixStr, conventional.PerfStr},
		IgnorePatterns: []string{conventional.DocsStr, conventional.StyleStr, conventional.TestStr, conventional.ChoreStr, conventional.BuildStr, conventional.CIStr},
	}
}

// CommitAnalysis is the outcome of classifying a single commit.
type CommitAnalysis struct {
	// Message is the parsed Conventional Commit, valid only when Parsed
	// is true.
	Message conventional.Message

	// Parsed reports whether the commit's header matched the
	// Conventional Commits grammar. A false value means Bump was
	// assigned by the catch-all rule, not by pattern matching.
	Parsed bool

	// Bump is the version increment this commit warrants in isolation.
	Bump change.Bump

	// ShouldIgnore reports whether the commit matched an ignore pattern
	// and therefore carries no versioning weight of its own.
	ShouldIgnore bool

	// Reason is a short human-readable explanation of how Bump was
	// derived, suitable for logs and changelog diagnostics.
	Reason string
}

// AnalyzeCommit classifies a single commit's raw message into a
// CommitAnalysis, per Config.
//
// The decision order is: (1) if analysis is disabled, BumpPatch; (2) if the
// header fails to parse as a Conventional Commit, BumpPatch with
// Parsed=false; (3) if the parsed Message is a breaking change, BumpMajor;
// (4) otherwise the header is tested against Config's Ignore, Major, Minor,
// and Patch patterns in that order; (5) a header matching none of them
// falls back to BumpPatch.
func AnalyzeCommit(raw string, cfg Config) CommitAnalysis {
	if !cfg.Enabled {
		return CommitAnalysis{Bump: change.BumpPatch, Reason: "commit analysis disabled, default patch bump applied"}
	}

	msg, err := conventional.ParseMessage(raw)
	if err != nil {
		return CommitAnalysis{Bump: change.BumpPatch, Reason: "commit header is not a Conventional Commit, default patch bump applied"}
	}

	if msg.Breaking {
		return CommitAnalysis{Message: msg, Parsed: true, Bump: change.BumpMajor, Reason: "breaking change marker or footer present"}
	}

	header := headerPrefix(msg)

	switch {
	case matchesAny(header, cfg.IgnorePatterns):
		return CommitAnalysis{Message: msg, Parsed: true, Bump: change.BumpNone, ShouldIgnore: true, Reason: "header matched an ignore pattern"}
	case matchesAny(header, cfg.MajorPatterns):
		return CommitAnalysis{Message: msg, Parsed: true, Bump: change.BumpMajor, Reason: "header matched a major pattern"}
	case matchesAny(header, cfg.MinorPatterns):
		return CommitAnalysis{Message: msg, Parsed: true, Bump: change.BumpMinor, Reason: "header matched a minor pattern"}
	case matchesAny(header, cfg.PatchPatterns):
		return CommitAnalysis{Message: msg, Parsed: true, Bump: change.BumpPatch, Reason: "header matched a patch pattern"}
	default:
		return CommitAnalysis{Message: msg, Parsed: true, Bump: change.BumpPatch, Reason: "commit type matched no configured pattern, default patch bump applied"}
	}
}

// AnalyzeCommits classifies every commit in commits (oldest first is not
// required; order is preserved in the returned slice) using raw's Message
// field as the Conventional Commit source.
func AnalyzeCommits(commits []git.Commit, cfg Config) []CommitAnalysis {
	analyses := make([]CommitAnalysis, len(commits))
	for i, c := range commits {
		analyses[i] = AnalyzeCommit(c.Message, cfg)
	}
	return analyses
}

// headerPrefix reconstructs the "type(scope)" prefix of msg's header, the
// portion pattern matching is performed against. The breaking marker and
// subject are deliberately excluded: breaking changes are already handled
// before pattern matching runs, and patterns describe commit types, not
// subjects.
func headerPrefix(msg conventional.Message) string {
	header := msg.Type.String()
	if !msg.Scope.IsZero() {
		header += "(" + msg.Scope.String() + ")"
	}
	return header
}

// matchesAny reports whether header starts with any pattern in patterns,
// case-insensitively.
func matchesAny(header string, patterns []string) bool {
	lower := strings.ToLower(header)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// MaxBump returns the highest-precedence Bump across analyses (BumpNone <
// BumpPatch < BumpMinor < BumpMajor), the reduction a module's release
// applies across its commit range. An empty slice, or one where every
// commit resolved to BumpNone, returns BumpNone.
func MaxBump(analyses []CommitAnalysis) change.Bump {
	max := change.BumpNone
	for _, a := range analyses {
		if a.Bump > max {
			max = a.Bump
		}
	}
	return max
}
