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

package version

import (
	"dirpx.dev/monover/core/constraint"
	"dirpx.dev/monover/core/model/semver"
)

// Result is the outcome of Calculate for a single project.
type Result struct {
	// VersionString is the rendered version, with no tag prefix.
	VersionString string

	// ParsedSemVer is VersionString's SemVer decomposition. For a
	// SchemeCalVer project this is the CalVer value projected via
	// calver.Version.ToSemVer.
	ParsedSemVer semver.Version

	// Changed reports whether this run produced a new version distinct
	// from the resolved baseline.
	Changed bool

	// Reason is a short human-readable explanation of how VersionString
	// was derived.
	Reason string

	// CommitHeight is the number of commits since the resolved baseline,
	// used verbatim by Dev- and Feature-branch prerelease identifiers.
	CommitHeight int

	// Scheme echoes the scheme this Result was computed under.
	Scheme Scheme

	// Warnings lists any Warning-severity constraint violations recorded
	// against VersionString. A non-empty Warnings slice does not imply
	// Changed is false; warnings decorate a result without failing it.
	Warnings []constraint.Violation
}
