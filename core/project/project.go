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

// Package project defines the project-graph adapter boundary (C5): the
// operations the version calculator needs to enumerate a repository's
// projects (modules, packages, workspace members — whatever unit the
// embedding application versions independently) and resolve their
// dependency edges, plus a visited-set transitive-closure utility built on
// top of that boundary.
//
// Like core/vcs, the Graph interface is the contracted surface; this
// package also ships GoWorkspaceGraph, an illustrative concrete adapter
// for repositories organized as a set of Go modules linked by local
// "replace" directives, built on golang.org/x/mod.
package project

import (
	"context"
	"path/filepath"
	"sort"
)

// ManifestInfo is the raw information ParseManifest extracts from a single
// project manifest, before dependency names have been resolved to other
// projects' canonical names (ParseManifest reports dependencies as
// manifest paths; BuildGraph resolves those paths to project names).
type ManifestInfo struct {
	// Name is the project's canonical name (for example, a Go module
	// path or a package name).
	Name string

	// IsTest marks a project that exists only to test others and SHOULD
	// be excluded from release versioning when
	// version.Options.SkipTestProjects is set.
	IsTest bool

	// IsPackable marks a project that produces a distributable artifact.
	// Projects with IsPackable false (for example, internal tooling or
	// example code) are excluded from release versioning when
	// version.Options.SkipNonPackable is set.
	IsPackable bool

	// DirectDeps lists the manifest paths of projects this project
	// directly depends on, as recorded in its manifest. Graph
	// implementations resolve conditional or per-target dependency lists
	// to their union by default (the multi-target Open Question; see
	// DESIGN.md).
	DirectDeps []string
}

// Graph is the adapter surface the engine uses to discover a repository's
// projects and their manifests.
type Graph interface {
	// EnumerateProjectManifests returns the manifest paths of every
	// project found under repoRoot. When subdir is non-empty, the search
	// is limited to that subdirectory (relative to repoRoot).
	EnumerateProjectManifests(ctx context.Context, repoRoot string, subdir string) ([]string, error)

	// ParseManifest reads and parses the manifest at path, returning the
	// project's name, classification flags, and direct dependency
	// manifest paths.
	ParseManifest(ctx context.Context, path string) (ManifestInfo, error)
}

// ProjectInfo describes one project discovered in a repository, with its
// dependency edges resolved to other projects' canonical names rather than
// manifest paths.
type ProjectInfo struct {
	// Name is the project's canonical name, as returned by
	// ManifestInfo.Name.
	Name string

	// ManifestPath is the path to this project's manifest, relative to
	// the repository root.
	ManifestPath string

	// IsTest mirrors ManifestInfo.IsTest.
	IsTest bool

	// IsPackable mirrors ManifestInfo.IsPackable.
	IsPackable bool

	// DirectDeps lists the canonical names of projects this project
	// directly depends on.
	DirectDeps []string

	// AllDeps lists the canonical names of every project in this
	// project's transitive dependency closure (not including the
	// project itself), computed by Closure.
	AllDeps []string
}

// TypeName returns "ProjectInfo".
func (p ProjectInfo) TypeName() string {
	return "ProjectInfo"
}

// IsZero reports whether p has no name, meaning it was never populated.
func (p ProjectInfo) IsZero() bool {
	return p.Name == ""
}

// BuildGraph enumerates every project manifest under repoRoot (optionally
// scoped to subdir), parses each one (passing ParseManifest the enumerated
// path joined onto repoRoot), resolves DirectDeps from manifest paths
// (taken relative to repoRoot) to project names, and computes each
// project's transitive closure via Closure.
//
// Manifest paths that ParseManifest cannot resolve to a known project
// (for example, a dependency edge pointing outside the enumerated set) are
// silently dropped from DirectDeps: BuildGraph only models edges between
// projects it was able to enumerate, consistent with the Non-goal that the
// engine does not perform remote or published-package resolution.
func BuildGraph(ctx context.Context, g Graph, repoRoot, subdir string) ([]ProjectInfo, error) {
	manifestPaths, err := g.EnumerateProjectManifests(ctx, repoRoot, subdir)
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]ManifestInfo, len(manifestPaths))
	nameByPath := make(map[string]string, len(manifestPaths))
	for _, path := range manifestPaths {
		info, err := g.ParseManifest(ctx, filepath.Join(repoRoot, path))
		if err != nil {
			return nil, err
		}
		byPath[path] = info
		nameByPath[path] = info.Name
	}

	directDepsByName := make(map[string][]string, len(byPath))
	projects := make([]ProjectInfo, 0, len(byPath))
	for path, info := range byPath {
		deps := make([]string, 0, len(info.DirectDeps))
		for _, depPath := range info.DirectDeps {
			if rel, relErr := filepath.Rel(repoRoot, depPath); relErr == nil {
				depPath = filepath.ToSlash(rel)
			}
			if depName, ok := nameByPath[depPath]; ok {
				deps = append(deps, depName)
			}
		}
		directDepsByName[info.Name] = deps
		projects = append(projects, ProjectInfo{
			Name:         info.Name,
			ManifestPath: path,
			IsTest:       info.IsTest,
			IsPackable:   info.IsPackable,
			DirectDeps:   deps,
		})
	}

	for i := range projects {
		projects[i].AllDeps = Closure(directDepsByName, projects[i].Name)
	}

	return projects, nil
}

// Closure computes the transitive closure of start's dependencies under
// directDeps (a project name -> direct dependency names adjacency map),
// not including start itself. A visited set keyed by project name
// guarantees termination even when directDeps contains a cycle (invariant
// vi: transitive closure is finite even in cyclic graphs).
//
// The returned slice is sorted for deterministic output, independent of
// map iteration order.
func Closure(directDeps map[string][]string, start string) []string {
	visited := make(map[string]bool)

	var walk func(name string)
	walk = func(name string) {
		for _, dep := range directDeps[name] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			walk(dep)
		}
	}
	walk(start)

	result := make([]string, 0, len(visited))
	for name := range visited {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
