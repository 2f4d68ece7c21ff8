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

package conventional

import (
	"fmt"
	"strings"
)

const (
	// BodyMaxBytes is the maximum allowed size in bytes for a Conventional
	// Commit body when encoded as UTF-8.
	BodyMaxBytes = 8 * 1024

	// BodyMaxLines is the maximum number of logical lines allowed in a
	// Conventional Commit body.
	BodyMaxLines = 100
)

// Body is the optional multi-line body portion of a Conventional Commit
// message, providing detail beyond the single-line subject. The zero value
// (empty string) represents "no body present".
//
// Lines are separated by LF. Bodies MUST NOT contain raw CR characters in
// the normalized form produced by ParseBody.
type Body string

// ParseBody normalizes line endings (CRLF/CR -> LF), trims leading and
// trailing blank lines while preserving internal ones, and validates the
// result.
func ParseBody(s string) (Body, error) {
	normalized := strings.ReplaceAll(s, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "")
	normalized = trimBlankLines(normalized)

	body := Body(normalized)
	if err := body.Validate(); err != nil {
		return "", fmt.Errorf("invalid body: %w", err)
	}

	return body, nil
}

// String returns the Body's text.
func (b Body) String() string {
	return string(b)
}

// IsZero reports whether b has no body content.
func (b Body) IsZero() bool {
	return b == ""
}

// Equal reports whether b and other are the same Body.
func (b Body) Equal(other Body) bool {
	return b == other
}

// Validate checks that b conforms to body constraints: the zero value is
// valid; otherwise b MUST NOT contain raw CR characters, MUST NOT exceed
// BodyMaxBytes bytes, and MUST NOT contain more than BodyMaxLines lines.
func (b Body) Validate() error {
	if b.IsZero() {
		return nil
	}

	str := string(b)

	if strings.Contains(str, "\r") {
		return fmt.Errorf("Body contains raw CR characters (line endings must be normalized to LF)")
	}

	byteLen := len(str)
	if byteLen > BodyMaxBytes {
		return fmt.Errorf("Body is too large: %d bytes (maximum: %d bytes)", byteLen, BodyMaxBytes)
	}

	lines := strings.Split(str, "\n")
	lineCount := len(lines)
	if lineCount > BodyMaxLines {
		return fmt.Errorf("Body has too many lines: %d lines (maximum: %d lines)", lineCount, BodyMaxLines)
	}

	return nil
}

// trimBlankLines removes leading and trailing blank lines from s while
// preserving internal blank lines used for paragraph separation.
func trimBlankLines(s string) string {
	if s == "" {
		return ""
	}

	lines := strings.Split(s, "\n")

	start := 0
	for start < len(lines) && isBlankLine(lines[start]) {
		start++
	}

	if start == len(lines) {
		return ""
	}

	end := len(lines) - 1
	for end >= 0 && isBlankLine(lines[end]) {
		end--
	}

	return strings.Join(lines[start:end+1], "\n")
}

// isBlankLine reports whether a line is empty or consists only of
// whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
