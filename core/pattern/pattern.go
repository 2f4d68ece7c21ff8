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

// Package pattern implements the glob-based change classifier (C2): it
// matches changed file paths against ordered lists of ignore/major/minor/
// patch patterns and derives the resulting required version bump.
//
// Pattern syntax is a small, path-aware glob: "*" matches any run of
// characters not crossing a "/", "**" matches any run including "/"
// ("**/" also matches zero directories, so "src/**/*.go" matches
// "src/main.go"), and "?" matches a single character other than "/". No third-party glob
// library in the broader dependency pack supports "**" directly (stdlib
// path.Match and filepath.Match do not either), so matching is implemented
// directly against a translated regular expression.
package pattern

import (
	"regexp"
	"strings"
	"sync"

	"dirpx.dev/monover/core/model/change"
)

// Match reports whether path matches the glob pattern using monover's glob
// semantics ("*" within a path segment, "**" across segments, "?" for a
// single non-separator character). Both pattern and path are normalized by
// converting backslashes to forward slashes before matching, so patterns
// and paths recorded on Windows-style checkouts compare correctly.
func Match(pattern, path string) bool {
	re, err := compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(normalize(path))
}

// compileCache memoizes pattern -> compiled regular expression, since the
// same small set of configured patterns is tested against every changed
// file in a run.
var compileCache sync.Map // map[string]*regexp.Regexp

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := compileCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(toRegex(normalize(pattern)))
	if err != nil {
		return nil, err
	}
	compileCache.Store(pattern, re)
	return re, nil
}

func normalize(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// toRegex translates a normalized glob pattern into an anchored regular
// expression implementing monover's glob semantics.
func toRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			if i+2 < len(pattern) && pattern[i+2] == '/' {
				b.WriteString("(?:.*/)?")
				i += 3
			} else {
				b.WriteString("(?:.*)")
				i += 2
			}
		case c == '*':
			b.WriteString("[^/]*")
			i++
		case c == '?':
			b.WriteString("[^/]")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	b.WriteString("$")
	return b.String()
}

// ChangeDetectionConfig holds the ordered pattern lists and aggregation
// knobs that Classify uses to turn a list of changed file paths into a
// change.ChangeClassification.
type ChangeDetectionConfig struct {
	// IgnorePatterns lists globs tested first; a matching path is bucketed
	// as ignored and excluded from every other bucket.
	IgnorePatterns []string

	// MajorPatterns, MinorPatterns, and PatchPatterns are tested in that
	// order (after IgnorePatterns) for paths not already ignored; the
	// first list to match wins.
	MajorPatterns []string
	MinorPatterns []string
	PatchPatterns []string

	// SourceOnlyMode, when true, treats a classification with zero
	// non-ignored files as ShouldIgnore; unclassified files count as
	// non-ignored (see change.ChangeClassification.ShouldIgnore).
	SourceOnlyMode bool

	// MinimumBumpType raises Classify's result to at least this Bump when
	// the classification is not ShouldIgnore.
	MinimumBumpType change.Bump
}

// Classify partitions paths into the ignored/major/minor/patch/unclassified
// buckets defined by cfg, in the order spec.md §4.2 requires: each path is
// tested against IgnorePatterns first (first match wins), then against
// MajorPatterns, MinorPatterns, and PatchPatterns in order (first match
// among those three wins); a path matching none of the configured patterns
// is unclassified.
func Classify(paths []string, cfg ChangeDetectionConfig) change.ChangeClassification {
	result := change.ChangeClassification{
		SourceOnlyMode:  cfg.SourceOnlyMode,
		MinimumBumpType: cfg.MinimumBumpType,
	}

	for _, p := range paths {
		switch {
		case matchesAny(cfg.IgnorePatterns, p):
			result.Ignored = append(result.Ignored, p)
		case matchesAny(cfg.MajorPatterns, p):
			result.Major = append(result.Major, p)
		case matchesAny(cfg.MinorPatterns, p):
			result.Minor = append(result.Minor, p)
		case matchesAny(cfg.PatchPatterns, p):
			result.Patch = append(result.Patch, p)
		default:
			result.Unclassified = append(result.Unclassified, p)
		}
	}

	return result
}

func matchesAny(patterns []string, path string) bool {
	for _, pat := range patterns {
		if Match(pat, path) {
			return true
		}
	}
	return false
}
