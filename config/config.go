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

// Package config decodes monover's declarative YAML configuration schema
// (spec.md §6's recognized-keys table) into a Config value and builds the
// per-project version.Options the engine feeds to core/version.Calculate.
//
// YAML loading itself (reading the file, locating it in a repository) is
// a thin wrapper concern left to the CLI per spec.md §1's scope boundary;
// this package only decodes bytes already read into memory, following the
// same validate-after-unmarshal pattern core/model/semver.Version uses for
// its own UnmarshalYAML method.
package config

import (
	"dirpx.dev/monover/core/changedetect"
	"dirpx.dev/monover/core/commitanalysis"
	"dirpx.dev/monover/core/constraint"
	"dirpx.dev/monover/core/model/calver"
	"dirpx.dev/monover/core/model/change"
	"dirpx.dev/monover/core/pattern"
	"dirpx.dev/monover/core/policy"
	"dirpx.dev/monover/core/version"
	"gopkg.in/yaml.v3"
)

// ProjectOverride carries the per-project overrides recognized under
// "projects.{name}.*" in spec.md §6.
type ProjectOverride struct {
	PrereleaseType        string   `yaml:"prereleaseType,omitempty"`
	ForceVersion          string   `yaml:"forceVersion,omitempty"`
	BaseVersion           string   `yaml:"baseVersion,omitempty"`
	AdditionalMonitorPath []string `yaml:"additionalMonitorPaths,omitempty"`
	Constraints           *ConstraintConfig `yaml:"constraints,omitempty"`
}

// ChangeDetectionConfig is the YAML shape of spec.md §6's
// "changeDetection.*" keys.
type ChangeDetectionConfig struct {
	IgnorePatterns          []string    `yaml:"ignorePatterns,omitempty"`
	MajorPatterns           []string    `yaml:"majorPatterns,omitempty"`
	MinorPatterns           []string    `yaml:"minorPatterns,omitempty"`
	PatchPatterns           []string    `yaml:"patchPatterns,omitempty"`
	SourceOnlyMode          bool        `yaml:"sourceOnlyMode,omitempty"`
	MinimumBumpType         change.Bump `yaml:"minimumBumpType,omitempty"`
	AdditionalMonitorPaths  []string    `yaml:"additionalMonitorPaths,omitempty"`
}

// ConventionalCommitsConfig is the YAML shape of spec.md §6's
// "conventionalCommits.*" keys.
type ConventionalCommitsConfig struct {
	Enabled        bool     `yaml:"enabled"`
	MajorPatterns  []string `yaml:"majorPatterns,omitempty"`
	MinorPatterns  []string `yaml:"minorPatterns,omitempty"`
	PatchPatterns  []string `yaml:"patchPatterns,omitempty"`
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`
}

// CalVerConfig is the YAML shape of spec.md §6's "calVer.*" keys.
type CalVerConfig struct {
	Format                string `yaml:"format,omitempty"`
	Separator             string `yaml:"separator,omitempty"`
	ResetPatchPeriodically bool  `yaml:"resetPatchPeriodically,omitempty"`
	StartDate             string `yaml:"startDate,omitempty"`
}

// GroupConfig is the YAML shape of one entry under
// "versionPolicy.groups.{name}".
type GroupConfig struct {
	Projects    []string `yaml:"projects,omitempty"`
	Strategy    string   `yaml:"strategy,omitempty"`
	BaseVersion string   `yaml:"baseVersion,omitempty"`
}

// VersionPolicyConfig is the YAML shape of spec.md §6's "versionPolicy.*"
// keys.
type VersionPolicyConfig struct {
	Policy string                 `yaml:"policy,omitempty"`
	Groups map[string]GroupConfig `yaml:"groups,omitempty"`
}

// ConstraintConfig is the YAML shape of spec.md §6's "constraints.*" keys,
// at both the top level and per-project under "projects.{name}.constraints".
type ConstraintConfig struct {
	Enabled                  bool                     `yaml:"enabled"`
	MinimumVersion           string                   `yaml:"minimumVersion,omitempty"`
	MaximumVersion           string                   `yaml:"maximumVersion,omitempty"`
	AllowedRange             string                   `yaml:"allowedRange,omitempty"`
	BlockedVersions          []string                 `yaml:"blockedVersions,omitempty"`
	RequireMonotonicIncrease bool                     `yaml:"requireMonotonicIncrease,omitempty"`
	RequireMajorApproval     bool                     `yaml:"requireMajorApproval,omitempty"`
	CustomRules              []constraint.CustomRule  `yaml:"customRules,omitempty"`
}

// GitIntegrationConfig is the YAML shape of spec.md §6's
// "gitIntegration.*" keys.
type GitIntegrationConfig struct {
	IncludeBranchInMetadata   bool `yaml:"includeBranchInMetadata,omitempty"`
	IncludeShortHashInMetadata bool `yaml:"includeShortHashInMetadata,omitempty"`
}

// Config is the root of monover's recognized YAML schema (spec.md §6).
// Unknown keys are ignored by gopkg.in/yaml.v3's default decoding (no
// KnownFields(true) is set), per the "unknown keys are ignored with a
// warning" design note in spec.md §9 — the warning itself is a concern of
// the CLI wrapper that has somewhere to print it; Config only tolerates
// unknown keys silently at the library layer.
type Config struct {
	PrereleaseType        string                      `yaml:"prereleaseType,omitempty"`
	TagPrefix             string                      `yaml:"tagPrefix,omitempty"`
	BaseVersion           string                      `yaml:"baseVersion,omitempty"`
	SkipTestProjects      bool                        `yaml:"skipTestProjects,omitempty"`
	SkipNonPackableProjects bool                      `yaml:"skipNonPackableProjects,omitempty"`
	Projects              map[string]ProjectOverride  `yaml:"projects,omitempty"`
	ChangeDetection        ChangeDetectionConfig       `yaml:"changeDetection,omitempty"`
	ConventionalCommits    ConventionalCommitsConfig   `yaml:"conventionalCommits,omitempty"`
	CalVer                 CalVerConfig                `yaml:"calVer,omitempty"`
	VersionPolicy          VersionPolicyConfig         `yaml:"versionPolicy,omitempty"`
	Constraints            ConstraintConfig            `yaml:"constraints,omitempty"`
	GitIntegration         GitIntegrationConfig         `yaml:"gitIntegration,omitempty"`
}

// Load decodes raw YAML bytes into a Config.
func Load(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// BuildOptions assembles a single project's version.Options from cfg,
// merging project-level overrides over the global configuration with
// project precedence (spec.md §9's merge rule), and from the caller-
// supplied project metadata the config schema itself cannot know
// (project-paths, dependency closure, test/packable classification come
// from core/project, not from YAML).
func (cfg Config) BuildOptions(projectName string, isTest, isPackable bool, projectPaths, dependencyPaths []string) (version.Options, error) {
	override := cfg.Projects[projectName]

	monitorPaths := append(append([]string{}, cfg.ChangeDetection.AdditionalMonitorPaths...), override.AdditionalMonitorPath...)

	opts := version.Options{
		ProjectName:      projectName,
		TagPrefix:        cfg.TagPrefix,
		BaseVersion:      cfg.BaseVersion,
		IsTestProject:    isTest,
		SkipTestProjects: cfg.SkipTestProjects,
		IsPackable:       isPackable,
		SkipNonPackable:  cfg.SkipNonPackableProjects,
		ChangeDetection: changedetect.Config{
			ProjectPaths:    projectPaths,
			DependencyPaths: dependencyPaths,
			MonitorPaths:    monitorPaths,
			Classification: pattern.ChangeDetectionConfig{
				IgnorePatterns:   cfg.ChangeDetection.IgnorePatterns,
				MajorPatterns:    cfg.ChangeDetection.MajorPatterns,
				MinorPatterns:    cfg.ChangeDetection.MinorPatterns,
				PatchPatterns:    cfg.ChangeDetection.PatchPatterns,
				SourceOnlyMode:   cfg.ChangeDetection.SourceOnlyMode,
				MinimumBumpType:  cfg.ChangeDetection.MinimumBumpType,
			},
		},
		ConventionalCommits: commitanalysis.Config{
			Enabled:        cfg.ConventionalCommits.Enabled,
			MajorPatterns:  cfg.ConventionalCommits.MajorPatterns,
			MinorPatterns:  cfg.ConventionalCommits.MinorPatterns,
			PatchPatterns:  cfg.ConventionalCommits.PatchPatterns,
			IgnorePatterns: cfg.ConventionalCommits.IgnorePatterns,
		},
		GitIntegration: version.GitIntegrationConfig{
			IncludeBranchInMetadata:   cfg.GitIntegration.IncludeBranchInMetadata,
			IncludeShortHashInMetadata: cfg.GitIntegration.IncludeShortHashInMetadata,
		},
	}

	if override.BaseVersion != "" {
		opts.BaseVersion = override.BaseVersion
	}
	if override.ForceVersion != "" {
		opts.ForceVersion = override.ForceVersion
	}

	prereleaseStr := cfg.PrereleaseType
	if override.PrereleaseType != "" {
		prereleaseStr = override.PrereleaseType
	}
	if prereleaseStr != "" {
		pt, err := version.ParsePrereleaseType(prereleaseStr)
		if err != nil {
			return version.Options{}, err
		}
		opts.PrereleaseType = pt
		if pt == version.PrereleaseCustom {
			opts.PrereleaseCustom = prereleaseStr
		}
	}

	constraintsCfg := cfg.Constraints
	if override.Constraints != nil {
		constraintsCfg = *override.Constraints
	}
	opts.Constraints = constraint.Config{
		Enabled:                  constraintsCfg.Enabled,
		MinimumVersion:           constraintsCfg.MinimumVersion,
		MaximumVersion:           constraintsCfg.MaximumVersion,
		AllowedRange:             constraintsCfg.AllowedRange,
		BlockedVersions:          constraintsCfg.BlockedVersions,
		RequireMonotonicIncrease: constraintsCfg.RequireMonotonicIncrease,
		RequireMajorApproval:     constraintsCfg.RequireMajorApproval,
		CustomRules:              constraintsCfg.CustomRules,
	}

	if cfg.CalVer.Format != "" {
		opts.Scheme = version.SchemeCalVer
		opts.CalVer = calver.Config{
			Format:                   cfg.CalVer.Format,
			ResetPatchOnPeriodChange: cfg.CalVer.ResetPatchPeriodically,
		}
	}

	return opts, nil
}

// PolicyConfig translates cfg.VersionPolicy into core/policy.Config.
func (cfg Config) PolicyConfig() (policy.Config, error) {
	p := policy.Independent
	if cfg.VersionPolicy.Policy != "" {
		parsed, err := policy.ParsePolicy(cfg.VersionPolicy.Policy)
		if err != nil {
			return policy.Config{}, err
		}
		p = parsed
	}

	var groups []policy.Group
	for name, g := range cfg.VersionPolicy.Groups {
		strategy := policy.Independent
		if g.Strategy != "" {
			parsed, err := policy.ParsePolicy(g.Strategy)
			if err != nil {
				return policy.Config{}, err
			}
			strategy = parsed
		}
		groups = append(groups, policy.Group{
			Name:        name,
			Members:     g.Projects,
			Strategy:    strategy,
			BaseVersion: g.BaseVersion,
		})
	}

	return policy.Config{Policy: p, Groups: groups}, nil
}
