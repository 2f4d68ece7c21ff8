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

package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/monover/core/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// GoWorkspaceGraph is an illustrative Graph adapter for repositories laid
// out as a set of Go modules linked by local, path-based "replace"
// directives (a "Go workspace" in the colloquial rather than go.work
// sense). It never resolves a module path through the module proxy: per
// the engine's Non-goals, a dependency edge only exists between two
// modules this adapter has itself enumerated from the local filesystem.
//
// TestDirNames and NonPackableDirNames classify projects by the base name
// of the directory containing their go.mod, a convention good enough for
// an illustrative adapter; a production embedding would typically read
// this from the manifest itself (a build tag, a sentinel file) instead.
type GoWorkspaceGraph struct {
	// TestDirNames lists directory base names (for example "testdata",
	// "e2e") whose modules are classified IsTest.
	TestDirNames []string

	// NonPackableDirNames lists directory base names (for example
	// "tools", "examples") whose modules are classified !IsPackable.
	NonPackableDirNames []string
}

// EnumerateProjectManifests walks repoRoot (or repoRoot/subdir, when
// subdir is non-empty) and returns the path of every go.mod file found,
// relative to repoRoot. Nested modules under a vendor/ directory are
// skipped, matching the Go toolchain's own module-boundary convention.
func (g GoWorkspaceGraph) EnumerateProjectManifests(ctx context.Context, repoRoot string, subdir string) ([]string, error) {
	root := repoRoot
	if subdir != "" {
		root = filepath.Join(repoRoot, subdir)
	}

	var manifests []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "vendor" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == "go.mod" {
			rel, relErr := filepath.Rel(repoRoot, path)
			if relErr != nil {
				return relErr
			}
			manifests = append(manifests, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, &errors.EngineError{
			Code:   errors.EngineCodeVCSUnavailable,
			Reason: "could not walk repository tree: " + err.Error(),
			Cause:  err,
		}
	}
	return manifests, nil
}

// ParseManifest reads the go.mod at path, validates its
// module path with golang.org/x/mod/module.CheckPath, and returns its
// name, classification flags (derived from the manifest's containing
// directory name), and the manifest paths of any modules it references via
// local, path-based "replace" directives.
//
// path is resolved against the current working directory, and the
// reported dependency manifest paths are built from path's directory;
// BuildGraph passes paths returned by EnumerateProjectManifests joined
// back onto the same repoRoot.
func (g GoWorkspaceGraph) ParseManifest(ctx context.Context, path string) (ManifestInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManifestInfo{}, &errors.EngineError{
			Code:   errors.EngineCodeVCSUnavailable,
			Reason: "could not read manifest " + path + ": " + err.Error(),
			Cause:  err,
		}
	}

	mf, err := modfile.Parse(path, data, nil)
	if err != nil {
		return ManifestInfo{}, &errors.EngineError{
			Code:   errors.EngineCodeMalformedVersion,
			Reason: "could not parse go.mod " + path + ": " + err.Error(),
			Cause:  err,
		}
	}

	if mf.Module == nil || mf.Module.Mod.Path == "" {
		return ManifestInfo{}, &errors.EngineError{
			Code:   errors.EngineCodeInvalidInput,
			Reason: "go.mod " + path + " has no module directive",
		}
	}
	if err := module.CheckPath(mf.Module.Mod.Path); err != nil {
		return ManifestInfo{}, &errors.EngineError{
			Code:   errors.EngineCodeInvalidInput,
			Reason: "module path " + mf.Module.Mod.Path + " is invalid: " + err.Error(),
			Cause:  err,
		}
	}

	dir := filepath.ToSlash(filepath.Dir(path))
	base := dir
	if idx := strings.LastIndexByte(dir, '/'); idx >= 0 {
		base = dir[idx+1:]
	}

	info := ManifestInfo{
		Name:       mf.Module.Mod.Path,
		IsTest:     containsName(g.TestDirNames, base),
		IsPackable: !containsName(g.NonPackableDirNames, base),
	}

	for _, rep := range mf.Replace {
		if rep.New.Version != "" {
			// A versioned replacement still points at a published
			// module, not a local directory; it carries no local
			// dependency edge for the project graph.
			continue
		}
		if !strings.HasPrefix(rep.New.Path, ".") && !strings.HasPrefix(rep.New.Path, "/") {
			continue
		}
		depManifest := filepath.ToSlash(filepath.Join(dir, rep.New.Path, "go.mod"))
		info.DirectDeps = append(info.DirectDeps, depManifest)
	}

	return info, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Compile-time check that GoWorkspaceGraph implements Graph.
var _ Graph = GoWorkspaceGraph{}
