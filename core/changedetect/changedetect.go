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

// Package changedetect implements the baseline-to-head change detector
// (C7): it diffs two commits through a vcs.VCS, narrows the result to the
// paths that are relevant to a single project, and hands the relevant
// paths to core/pattern for classification.
//
// A monorepo project is "touched" by a commit range in three ways: a file
// changed under the project's own directory tree, a file changed under a
// directory tree belonging to one of the project's (transitive)
// dependencies, or a file matched one of a small set of extra monitor
// globs configured outside either tree (a shared lint config, a root
// Makefile). Detect folds all three into one relevant-paths list before
// classifying.
package changedetect

import (
	"context"
	"strings"

	"dirpx.dev/monover/core/model/change"
	"dirpx.dev/monover/core/model/git"
	"dirpx.dev/monover/core/pattern"
	"dirpx.dev/monover/core/vcs"
)

// Config scopes change detection to a single project.
type Config struct {
	// ProjectPaths lists the repository-relative directory prefixes that
	// make up the project itself (for example "services/billing"). A
	// changed path is in-project when it equals one of these prefixes or
	// sits beneath one as a subdirectory. An empty ProjectPaths treats
	// the entire repository as the project's own tree, the single-project
	// configuration.
	ProjectPaths []string

	// DependencyPaths lists the directory prefixes of every project this
	// project depends on, transitively (typically produced by
	// core/project.Closure). A changed path beneath any of these also
	// counts as relevant, since a dependency's change can force this
	// project to release too.
	DependencyPaths []string

	// MonitorPaths lists extra glob patterns (core/pattern syntax) that
	// mark a path as relevant regardless of project or dependency
	// boundaries.
	MonitorPaths []string

	// Classification drives how the relevant paths, once gathered, are
	// bucketed into ignore/major/minor/patch by core/pattern.Classify.
	Classification pattern.ChangeDetectionConfig
}

// Result is the outcome of Detect: every file change in the diffed range,
// alongside the classification of just the relevant subset.
type Result struct {
	// AllChanges is every file change VCS.Diff reported, relevant or not.
	AllChanges []git.FileChange

	// RelevantPaths is the subset of AllChanges' paths (new path, and old
	// path for renames/copies) that fell within the project's own tree,
	// a dependency's tree, or a monitor pattern.
	RelevantPaths []string

	// Classification is core/pattern.Classify's result over
	// RelevantPaths.
	Classification change.ChangeClassification
}

// Detect diffs from (exclusive) to to (inclusive) via repo, narrows the
// resulting file changes to cfg's project scope, and classifies the
// relevant paths.
func Detect(ctx context.Context, repo vcs.VCS, from, to git.Hash, cfg Config) (Result, error) {
	changes, err := repo.Diff(ctx, from, to)
	if err != nil {
		return Result{}, err
	}

	var relevant []string
	for _, fc := range changes {
		if isRelevant(fc.Path, cfg) {
			relevant = append(relevant, fc.Path)
		}
		if fc.OldPath != "" && isRelevant(fc.OldPath, cfg) {
			relevant = append(relevant, fc.OldPath)
		}
	}

	return Result{
		AllChanges:     changes,
		RelevantPaths:  relevant,
		Classification: pattern.Classify(relevant, cfg.Classification),
	}, nil
}

// isRelevant reports whether path falls within cfg's project tree, any
// dependency's tree, or matches a monitor pattern.
func isRelevant(path string, cfg Config) bool {
	if len(cfg.ProjectPaths) == 0 || withinAny(path, cfg.ProjectPaths) {
		return true
	}
	if withinAny(path, cfg.DependencyPaths) {
		return true
	}
	for _, m := range cfg.MonitorPaths {
		if pattern.Match(m, path) {
			return true
		}
	}
	return false
}

// withinAny reports whether path equals one of prefixes or sits beneath
// one of them as a subdirectory.
func withinAny(path string, prefixes []string) bool {
	normalized := strings.ReplaceAll(path, `\`, "/")
	for _, prefix := range prefixes {
		p := strings.TrimSuffix(strings.ReplaceAll(prefix, `\`, "/"), "/")
		if p == "" {
			continue
		}
		if normalized == p || strings.HasPrefix(normalized, p+"/") {
			return true
		}
	}
	return false
}
