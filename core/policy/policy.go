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

// Package policy implements cross-project coordination (C10): LockStep,
// Independent, and Grouped strategies for reconciling the independently
// computed version.Result of every project in a repository into the final
// versions a release actually carries.
//
// The policy engine is a pure function over the map of per-project results
// the engine collects after running core/version.Calculate on every
// project; it holds no state of its own and mutates nothing outside its
// return value, per spec.md §5's "no static/global mutable state" design
// note.
package policy

import (
	"sort"
	"strings"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/semver"
	"go.uber.org/multierr"
)

// Policy selects how a group of projects' versions are reconciled.
//
// Policy follows the same enum shape as the other config-facing types in
// this codebase: a canonical lowercase kebab-case String/Parse/Valid
// vocabulary, with text marshaling that rejects values Valid reports as
// undefined.
type Policy int

const (
	// LockStep coordinates every project in the group to share a single
	// version: the maximum SemVer among the group's individually computed
	// results (or the group's configured BaseVersion, if set).
	LockStep Policy = iota

	// Independent versions every project on its own; groups under this
	// policy are a no-op, each project is its own singleton group.
	Independent

	// Grouped applies a named GroupConfig's own Policy (LockStep or
	// Independent) to its member projects, and Independent to every
	// project not named by any group.
	Grouped
)

const (
	LockStepStr    = "lock-step"
	IndependentStr = "independent"
	GroupedStr     = "grouped"
)

// String returns the canonical string representation of p.
func (p Policy) String() string {
	switch p {
	case LockStep:
		return LockStepStr
	case Independent:
		return IndependentStr
	case Grouped:
		return GroupedStr
	default:
		return "unknown"
	}
}

// ParsePolicy converts str into a Policy value, accepting a handful of
// case/separator variants.
func ParsePolicy(str string) (Policy, error) {
	switch strings.ToLower(strings.ReplaceAll(str, "_", "-")) {
	case LockStepStr, "lockstep":
		return LockStep, nil
	case IndependentStr:
		return Independent, nil
	case GroupedStr:
		return Grouped, nil
	default:
		return Independent, &errors.ParseError{Type: "Policy", Value: str}
	}
}

// Valid reports whether p is one of the defined constants.
func (p Policy) Valid() bool {
	return p == LockStep || p == Independent || p == Grouped
}

// MarshalText implements encoding.TextMarshaler for Policy.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &errors.MarshalError{Type: "Policy", Value: int(p)}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Policy.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Group names one coordination group: its member projects (by literal name
// or a trailing-wildcard prefix such as "Billing.*"), the policy applied
// to those members when the top-level Config.Policy is Grouped, and an
// optional configured base version.
type Group struct {
	// Name identifies the group, used as the key in Config.Groups.
	Name string

	// Members lists literal project names and/or trailing-wildcard
	// prefixes ("Prefix.*") that belong to this group.
	Members []string

	// Strategy is the policy applied to this group's members: LockStep or
	// Independent. Grouped is not a valid per-group Strategy.
	Strategy Policy

	// BaseVersion, if set, is returned by CoordinateGroupVersion verbatim
	// instead of computing the group max.
	BaseVersion string
}

// Config is the top-level coordination configuration.
type Config struct {
	// Policy is the default applied when no Group claims a project:
	// LockStep (every project in the repository shares one version),
	// Independent (every project versions alone), or Grouped (consult
	// Groups; any project not matched by a Group is Independent).
	Policy Policy

	// Groups lists named coordination groups, consulted only when Policy
	// is Grouped.
	Groups []Group
}

// matchesMember reports whether project matches member, a literal name or
// a trailing-wildcard prefix of the form "Prefix.*".
func matchesMember(project, member string) bool {
	if strings.HasSuffix(member, ".*") {
		return strings.HasPrefix(project, strings.TrimSuffix(member, "*"))
	}
	return project == member
}

// findGroup returns the Group containing project, if any.
func findGroup(cfg Config, project string) (Group, bool) {
	for _, g := range cfg.Groups {
		for _, m := range g.Members {
			if matchesMember(project, m) {
				return g, true
			}
		}
	}
	return Group{}, false
}

// GetLinkedProjects returns every project whose final version must track
// project's: the full project set under LockStep, project's claiming
// Group's members under Grouped when that Group's Strategy is LockStep,
// and just {project} under Independent, or under Grouped when no Group
// claims project or the claiming Group's Strategy is not LockStep.
func GetLinkedProjects(project string, all []string, cfg Config) []string {
	switch cfg.Policy {
	case LockStep:
		out := make([]string, len(all))
		copy(out, all)
		sort.Strings(out)
		return out
	case Grouped:
		if g, ok := findGroup(cfg, project); ok && g.Strategy == LockStep {
			var members []string
			for _, candidate := range all {
				if candidateGroup, belongs := findGroup(cfg, candidate); belongs && candidateGroup.Name == g.Name {
					members = append(members, candidate)
				}
			}
			sort.Strings(members)
			return members
		}
		return []string{project}
	default: // Independent
		return []string{project}
	}
}

// CoordinateGroupVersion resolves the single version every member of group
// should carry, given results (every linked project's individually
// computed semver.Version, keyed by project name).
//
// Precedence: group.BaseVersion if set; otherwise the highest SemVer among
// results restricted to group's members; otherwise the default "0.1.0"
// when no member has a result yet.
func CoordinateGroupVersion(results map[string]semver.Version, group Group) (semver.Version, error) {
	if group.BaseVersion != "" {
		return semver.ParseVersion(group.BaseVersion)
	}

	var max semver.Version
	found := false
	for _, member := range group.Members {
		for name, v := range results {
			if !matchesMember(name, member) {
				continue
			}
			if !found || v.Greater(max) {
				max = v
				found = true
			}
		}
	}
	if !found {
		return semver.Version{Major: 0, Minor: 1, Patch: 0}, nil
	}
	return max, nil
}

// Apply returns a coordinated copy of results (project name -> computed
// version) according to cfg; results itself is not modified. LockStep sets
// every project to the highest version in results. Grouped resolves the
// members of each Group whose Strategy is LockStep to that group's
// coordinated version, leaving all other projects at their own version.
// Independent returns an unchanged copy.
func Apply(results map[string]semver.Version, cfg Config) (map[string]semver.Version, error) {
	out := make(map[string]semver.Version, len(results))
	for k, v := range results {
		out[k] = v
	}

	switch cfg.Policy {
	case Independent:
		return out, nil

	case LockStep:
		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)
		coordinated, err := CoordinateGroupVersion(results, Group{Members: names})
		if err != nil {
			return nil, err
		}
		for name := range out {
			out[name] = coordinated
		}
		return out, nil

	case Grouped:
		for _, g := range cfg.Groups {
			if g.Strategy != LockStep {
				continue
			}
			coordinated, err := CoordinateGroupVersion(results, g)
			if err != nil {
				return nil, err
			}
			for name := range out {
				for _, m := range g.Members {
					if matchesMember(name, m) {
						out[name] = coordinated
					}
				}
			}
		}
		return out, nil

	default:
		return out, nil
	}
}

// ValidateConfiguration checks cfg for misconfiguration (§7
// ConfigMisconfiguration): a project claimed by more than one group, an
// empty group under a Grouped policy, or a group carrying an unparsable
// BaseVersion. It returns every problem found, combined via multierr, so a
// single run surfaces all of them instead of stopping at the first.
func ValidateConfiguration(cfg Config, allProjects []string) error {
	var combined error

	if cfg.Policy == Grouped {
		claimedBy := make(map[string]string)
		for _, g := range cfg.Groups {
			if len(g.Members) == 0 {
				combined = multierr.Append(combined, &errors.EngineError{
					Code:   errors.EngineCodeConfigMisconfiguration,
					Reason: "group " + g.Name + " has no members",
				})
			}
			if g.BaseVersion != "" {
				if _, err := semver.ParseVersion(g.BaseVersion); err != nil {
					combined = multierr.Append(combined, &errors.EngineError{
						Code:   errors.EngineCodeConfigMisconfiguration,
						Reason: "group " + g.Name + " has malformed base version " + g.BaseVersion,
						Cause:  err,
					})
				}
			}
			for _, project := range allProjects {
				for _, m := range g.Members {
					if matchesMember(project, m) {
						if prior, ok := claimedBy[project]; ok && prior != g.Name {
							combined = multierr.Append(combined, &errors.EngineError{
								Code:   errors.EngineCodeConfigMisconfiguration,
								Reason: "project " + project + " belongs to both group " + prior + " and group " + g.Name,
							})
						}
						claimedBy[project] = g.Name
					}
				}
			}
		}
	}

	return combined
}
