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

// Package engine wires monover's core components into a single run: it
// enumerates a repository's projects via a project.Graph adapter, computes
// each project's version via core/version.Calculate, reconciles
// cross-project coordination via core/policy, and optionally creates the
// resulting release tags.
//
// Per spec.md §5, a Run is single-threaded and cooperative: projects are
// processed sequentially in a deterministic order, and cancellation is a
// single should_cancel check polled before each project's computation and
// between major phases. The engine spawns no goroutines; an Engine value
// may be reused across repeated Run calls to benefit from its head-commit
// scoped memoization cache, but a single Engine's Run method must not be
// called concurrently from multiple goroutines.
package engine

import (
	"context"
	"sort"

	"dirpx.dev/monover/config"
	"dirpx.dev/monover/core/branch"
	"dirpx.dev/monover/core/cache"
	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/git"
	"dirpx.dev/monover/core/model/semver"
	"dirpx.dev/monover/core/policy"
	"dirpx.dev/monover/core/project"
	"dirpx.dev/monover/core/vcs"
	"dirpx.dev/monover/core/version"
	"go.uber.org/multierr"
)

// ProjectResult pairs one project's identity with its computed
// version.Result.
type ProjectResult struct {
	Project project.ProjectInfo
	Result  version.Result
}

// Engine owns the memoization cache shared across repeated Run calls
// against the same repository (for example, a long-lived CI worker that
// re-evaluates versions on every push). A freshly constructed Engine has
// no cached entries; its first Run populates the cache and every
// subsequent Run reuses an entry unless the repository's head commit has
// moved on since.
type Engine struct {
	cache *cache.Cache[version.Result]
}

// New returns an Engine with an empty, unvalidated cache.
func New() *Engine {
	return &Engine{cache: cache.New[version.Result]()}
}

// RunOptions configures a single engine.Run invocation.
type RunOptions struct {
	// RepoRoot is the repository root every project path is resolved
	// relative to.
	RepoRoot string

	// Subdir, when non-empty, limits project enumeration to this
	// subdirectory of RepoRoot.
	Subdir string

	// Config is the decoded declarative configuration driving per-project
	// version.Options and cross-project policy.
	Config config.Config

	// CreateTags, when true, writes an annotated release tag for every
	// project whose Result reports Changed. Tag creation is best-effort
	// per project: a TagAlreadyExists failure for one project does not
	// abort the run.
	CreateTags bool

	// ShouldCancel, if non-nil, is polled before each project's
	// computation and between major phases; the first time it reports
	// true, Run stops and returns the project results computed so far
	// (none, if it fires before the first project) with Canceled set and
	// a nil error. A nil ShouldCancel means the run is
	// never cooperatively canceled.
	ShouldCancel func() bool
}

// Result is the outcome of a full engine Run.
type Result struct {
	// Projects lists every project's coordinated version.Result, keyed by
	// ProjectResult.Project.Name, in the same deterministic order Run
	// processed them.
	Projects []ProjectResult

	// Canceled reports whether RunOptions.ShouldCancel interrupted the run
	// before every project was processed.
	Canceled bool
}

// Run enumerates the repository's projects via graph, computes every
// project's version against repo, reconciles cross-project coordination,
// and (if requested) writes release tags.
//
// Run refuses to proceed if opts.Config's cross-project policy is
// misconfigured (§7 ConfigMisconfiguration): a project claimed by two
// groups, an empty group, or a group with a malformed base version each
// fail the run outright, before any project is computed.
func (e *Engine) Run(ctx context.Context, repo vcs.VCS, graph project.Graph, opts RunOptions) (Result, error) {
	projects, err := project.BuildGraph(ctx, graph, opts.RepoRoot, opts.Subdir)
	if err != nil {
		return Result{}, err
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })

	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}

	policyCfg, err := opts.Config.PolicyConfig()
	if err != nil {
		return Result{}, err
	}
	if cfgErr := policy.ValidateConfiguration(policyCfg, names); cfgErr != nil {
		return Result{}, cfgErr
	}

	if head, headErr := currentHead(ctx, repo); headErr == nil {
		e.cache.ValidateAndInvalidate(head)
	} else {
		e.cache.ClearAll()
	}

	if canceled(opts.ShouldCancel) {
		return Result{Canceled: true}, nil
	}

	byName := make(map[string]project.ProjectInfo, len(projects))
	for _, p := range projects {
		byName[p.Name] = p
	}

	results := make([]ProjectResult, 0, len(projects))
	semverByProject := make(map[string]version.Result, len(projects))

	var combinedErr error
	for _, p := range projects {
		if canceled(opts.ShouldCancel) {
			return Result{Projects: results, Canceled: true}, nil
		}

		if cached, ok := e.cache.Get(p.Name); ok {
			results = append(results, ProjectResult{Project: p, Result: cached})
			semverByProject[p.Name] = cached
			continue
		}

		dependencyPaths := make([]string, 0, len(p.AllDeps))
		for _, dep := range p.AllDeps {
			if depInfo, ok := byName[dep]; ok {
				dependencyPaths = append(dependencyPaths, manifestDir(depInfo.ManifestPath))
			}
		}

		voptions, err := opts.Config.BuildOptions(p.Name, p.IsTest, p.IsPackable, []string{manifestDir(p.ManifestPath)}, dependencyPaths)
		if err != nil {
			combinedErr = multierr.Append(combinedErr, &errors.EngineError{Code: errors.EngineCodeInvalidInput, Project: p.Name, Reason: "invalid configuration", Cause: err})
			continue
		}

		result, err := version.Calculate(ctx, repo, voptions)
		if err != nil {
			combinedErr = multierr.Append(combinedErr, err)
			continue
		}

		e.cache.Set(p.Name, result)
		results = append(results, ProjectResult{Project: p, Result: result})
		semverByProject[p.Name] = result
	}

	if canceled(opts.ShouldCancel) {
		return Result{Projects: results, Canceled: true}, nil
	}

	coordinated, err := coordinate(semverByProject, policyCfg)
	if err != nil {
		return Result{}, err
	}
	for i := range results {
		if r, ok := coordinated[results[i].Project.Name]; ok {
			results[i].Result = r
		}
	}

	if opts.CreateTags {
		for _, pr := range results {
			if !pr.Result.Changed {
				continue
			}
			if tagErr := createReleaseTag(ctx, repo, opts.Config.TagPrefix, pr); tagErr != nil {
				if ee, ok := tagErr.(*errors.EngineError); ok && ee.Code == errors.EngineCodeTagAlreadyExists {
					continue
				}
				combinedErr = multierr.Append(combinedErr, tagErr)
			}
		}
	}

	return Result{Projects: results}, combinedErr
}

// currentHead resolves the repository's current head commit, used only to
// validate the run-scoped cache; a failure here is non-fatal to Run
// itself, Run simply clears the whole cache instead.
func currentHead(ctx context.Context, repo vcs.VCS) (git.Hash, error) {
	branchName, err := repo.CurrentBranchName(ctx)
	if err != nil {
		return "", err
	}
	commit, err := repo.LookupCommit(ctx, branchName)
	if err != nil {
		return "", err
	}
	return commit.Hash, nil
}

// canceled reports whether should, if non-nil, currently signals
// cancellation.
func canceled(should func() bool) bool {
	return should != nil && should()
}

// manifestDir returns the directory portion of a manifest path, the
// project-tree prefix change detection scopes itself to.
func manifestDir(manifestPath string) string {
	for i := len(manifestPath) - 1; i >= 0; i-- {
		if manifestPath[i] == '/' {
			return manifestPath[:i]
		}
	}
	return ""
}

// coordinate applies cfg's cross-project policy to every computed
// result's parsed semver, then folds the coordinated version back into a
// version.Result per project (preserving Changed/Reason/Warnings from the
// individual computation, but overwriting the version string and parsed
// semver to the coordinated value).
func coordinate(results map[string]version.Result, cfg policy.Config) (map[string]version.Result, error) {
	semvers := make(map[string]semver.Version, len(results))
	for name, r := range results {
		semvers[name] = r.ParsedSemVer
	}

	coordinatedVersions, err := policy.Apply(semvers, cfg)
	if err != nil {
		return nil, err
	}

	out := make(map[string]version.Result, len(results))
	for name, r := range results {
		coordinatedVersion, ok := coordinatedVersions[name]
		if !ok {
			out[name] = r
			continue
		}
		updated := r
		if !coordinatedVersion.Equal(r.ParsedSemVer) {
			updated.ParsedSemVer = coordinatedVersion
			updated.VersionString = coordinatedVersion.String()
		}
		out[name] = updated
	}
	return out, nil
}

// createReleaseTag writes the annotated tag for pr's computed version,
// scoped to pr's project name. A tag that already exists is surfaced as an
// *errors.EngineError with EngineCodeTagAlreadyExists for Run's caller to
// decide whether to treat as non-fatal.
func createReleaseTag(ctx context.Context, repo vcs.VCS, tagPrefix string, pr ProjectResult) error {
	tagName, err := git.ParseTagName(pr.Project.Name + "-" + tagPrefix + pr.Result.VersionString)
	if err != nil {
		return &errors.EngineError{Code: errors.EngineCodeInvalidInput, Project: pr.Project.Name, Reason: "invalid tag name", Cause: err}
	}
	message := "Release " + pr.Project.Name + " " + pr.Result.VersionString
	return branch.CreateTag(ctx, repo, tagName, message)
}
