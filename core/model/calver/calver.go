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

// Package calver implements calendar versioning (CalVer) as an alternative
// to semantic versioning for repositories that prefer date-derived version
// identifiers over manually tracked major/minor/patch numbers.
//
// A CalVer version is computed from a format string (for example
// "YYYY.0M.PATCH") and a date, producing a year component, a period
// component (month or ISO-8601 week), and a patch counter that resets or
// increments depending on whether the period has changed since the last
// computed version. Unlike semver.Version, which callers construct from
// parsed input, calver.Version is normally produced by Compute from a
// Config and a point in time.
package calver

import (
	"strconv"
	"strings"
	"time"

	"dirpx.dev/monover/core/errors"
	"dirpx.dev/monover/core/model/semver"
)

// DefaultFormat is the format monover falls back to whenever a configured
// Format string does not parse into a recognized token sequence.
const DefaultFormat = "YYYY.MM.PATCH"

// token identifies one recognized placeholder inside a CalVer format
// string. Any format substring that is not one of these placeholders is
// treated as literal separator text (for example "." or "-").
type token int

const (
	tokenLiteral token = iota
	tokenYYYY
	tokenYY
	token0Y
	tokenMM
	token0M
	tokenWW
	token0W
	tokenPatch
)

// tokenNames lists the recognized placeholders in longest-first order so
// that parseFormat's greedy scan never matches a short token (like "YY")
// as a prefix of a longer one (like "YYYY") by accident; it also keeps
// "0Y"/"0M"/"0W" and "PATCH" unambiguous against everything else.
var tokenNames = []struct {
	text string
	tok  token
}{
	{"YYYY", tokenYYYY},
	{"PATCH", tokenPatch},
	{"YY", tokenYY},
	{"0Y", token0Y},
	{"0M", token0M},
	{"0W", token0W},
	{"MM", tokenMM},
	{"WW", tokenWW},
}

// segment is one piece of a parsed format: either a token placeholder or a
// run of literal text to copy through unchanged.
type segment struct {
	tok     token
	literal string
}

// Config controls how Compute derives a CalVer version from a date.
type Config struct {
	// Format is the CalVer format string, for example "YYYY.0M.PATCH" or
	// "YY.WW.PATCH". If Format does not parse into a recognized token
	// sequence (or is empty), Compute falls back to DefaultFormat.
	Format string

	// ResetPatchOnPeriodChange controls patch behavior when the
	// year/period component computed from the target date differs from
	// the previous Version's: if true, Patch resets to 0; if false,
	// Patch always increments by 1 regardless of whether the period
	// changed.
	ResetPatchOnPeriodChange bool
}

// Version is a computed CalVer version: a year component, a period
// component (month or ISO-8601 week number, depending on Config.Format),
// and a patch counter.
//
// Year and Period are stored as the raw integers used to render the
// version string (so a "YY" format keeps Year as the two-digit form);
// Format records the format string that produced this Version so String
// can re-render it without the caller re-supplying the format.
type Version struct {
	Year   int
	Period int
	Patch  int
	Format string
}

// parseFormat tokenizes format into an ordered sequence of segments. It
// returns an error if format is empty, contains no recognized tokens, or
// contains more than one instance of any single token (a malformed
// configuration that Compute treats the same as any other parse failure,
// falling back to DefaultFormat).
func parseFormat(format string) ([]segment, error) {
	if format == "" {
		return nil, &errors.ParseError{Type: "CalVerFormat", Value: format}
	}

	var segments []segment
	seen := make(map[token]bool)
	i := 0
	for i < len(format) {
		matched := false
		for _, tn := range tokenNames {
			if strings.HasPrefix(format[i:], tn.text) {
				if seen[tn.tok] {
					return nil, &errors.ParseError{Type: "CalVerFormat", Value: format}
				}
				seen[tn.tok] = true
				segments = append(segments, segment{tok: tn.tok})
				i += len(tn.text)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		// Accumulate literal runs rather than emitting one segment per byte.
		start := i
		for i < len(format) {
			isTokenStart := false
			for _, tn := range tokenNames {
				if strings.HasPrefix(format[i:], tn.text) {
					isTokenStart = true
					break
				}
			}
			if isTokenStart {
				break
			}
			i++
		}
		segments = append(segments, segment{tok: tokenLiteral, literal: format[start:i]})
	}

	if !seen[tokenPatch] {
		return nil, &errors.ParseError{Type: "CalVerFormat", Value: format}
	}
	if !(seen[tokenYYYY] || seen[tokenYY] || seen[token0Y]) {
		return nil, &errors.ParseError{Type: "CalVerFormat", Value: format}
	}
	return segments, nil
}

// yearPeriod derives the (year, period) pair that a parsed format would
// produce for date, using the token choice to decide between calendar
// month and ISO-8601 week for the period component (and between full and
// two-digit year for the year component).
func yearPeriod(segments []segment, date time.Time) (year int, period int) {
	isoYear, isoWeek := date.ISOWeek()

	for _, s := range segments {
		switch s.tok {
		case tokenYYYY:
			year = date.Year()
		case tokenYY, token0Y:
			year = date.Year() % 100
		case tokenMM, token0M:
			period = int(date.Month())
		case tokenWW, token0W:
			// An ISO week can belong to a different year than
			// date.Year() near year boundaries (e.g. Dec 31 in week 1
			// of the following ISO year); ISOWeek reports the week's
			// own year, which is what WW/0W SHOULD be paired with.
			if !containsToken(segments, tokenYYYY) {
				year = isoYear % 100
			} else {
				year = isoYear
			}
			period = isoWeek
		}
	}
	return year, period
}

func containsToken(segments []segment, want token) bool {
	for _, s := range segments {
		if s.tok == want {
			return true
		}
	}
	return false
}

// render formats year/period/patch back into a string using segments,
// applying the zero-padding rules implied by each token: YYYY is always
// 4 digits, YY is unpadded, 0Y/0M/0W are zero-padded to 2 digits, MM/WW
// are unpadded, and PATCH is an unpadded decimal integer.
func render(segments []segment, year, period, patch int) string {
	var b strings.Builder
	for _, s := range segments {
		switch s.tok {
		case tokenLiteral:
			b.WriteString(s.literal)
		case tokenYYYY:
			b.WriteString(pad(year, 4))
		case tokenYY:
			b.WriteString(strconv.Itoa(year))
		case token0Y:
			b.WriteString(pad(year, 2))
		case tokenMM:
			b.WriteString(strconv.Itoa(period))
		case token0M:
			b.WriteString(pad(period, 2))
		case tokenWW:
			b.WriteString(strconv.Itoa(period))
		case token0W:
			b.WriteString(pad(period, 2))
		case tokenPatch:
			b.WriteString(strconv.Itoa(patch))
		}
	}
	return b.String()
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// resolveFormat parses cfg.Format, falling back to DefaultFormat (which
// always parses) whenever the configured format is empty or malformed.
func resolveFormat(cfg Config) []segment {
	segments, err := parseFormat(cfg.Format)
	if err != nil {
		segments, _ = parseFormat(DefaultFormat)
	}
	return segments
}

// ShouldIncrement reports whether computing a new CalVer version for date
// under cfg would differ from existing: true if existing is nil, or if the
// year/period component computed from date differs from existing's.
func ShouldIncrement(cfg Config, date time.Time, existing *Version) bool {
	if existing == nil {
		return true
	}
	segments := resolveFormat(cfg)
	year, period := yearPeriod(segments, date)
	return year != existing.Year || period != existing.Period
}

// Compute derives the next CalVer Version for date under cfg, given the
// previously computed Version (nil if this is the first release).
//
// The year and period components are always taken from date. The patch
// component resets to 0 when cfg.ResetPatchOnPeriodChange is set and the
// period changed from existing; otherwise it increments by 1 from
// existing.Patch (or starts at 0 for a first release, since
// ResetPatchOnPeriodChange's else-branch only applies when there is a
// previous patch count to increment).
func Compute(cfg Config, date time.Time, existing *Version) Version {
	segments := resolveFormat(cfg)
	year, period := yearPeriod(segments, date)

	var patch int
	switch {
	case existing == nil:
		patch = 0
	case cfg.ResetPatchOnPeriodChange && (year != existing.Year || period != existing.Period):
		patch = 0
	default:
		patch = existing.Patch + 1
	}

	return Version{
		Year:   year,
		Period: period,
		Patch:  patch,
		Format: cfg.Format,
	}
}

// String renders v using the format it was computed with (or DefaultFormat
// if v.Format is empty or malformed).
func (v Version) String() string {
	cfg := Config{Format: v.Format}
	segments := resolveFormat(cfg)
	return render(segments, v.Year, v.Period, v.Patch)
}

// ToSemVer projects v onto a semver.Version, carrying Year as Major, Period
// as Minor, and Patch as Patch, with no prerelease or metadata. This is the
// representation the version calculator and constraint validator operate
// on: CalVer schemes are held as ordinary SemVer values so that every
// downstream consumer of a resolved version (tag naming, precedence
// comparison, constraint checks) can stay SemVer-shaped regardless of
// which versioning scheme a project configures.
func (v Version) ToSemVer() semver.Version {
	return semver.Version{Major: v.Year, Minor: v.Period, Patch: v.Patch}
}

// IsZero reports whether v is the zero Version (no year, period, patch, or
// format recorded).
func (v Version) IsZero() bool {
	return v.Year == 0 && v.Period == 0 && v.Patch == 0 && v.Format == ""
}

// TypeName returns "CalVerVersion".
func (v Version) TypeName() string {
	return "CalVerVersion"
}

// Redacted returns the same representation as String(); CalVer versions
// carry no sensitive data.
func (v Version) Redacted() string {
	return v.String()
}
