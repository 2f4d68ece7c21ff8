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
	"regexp"
	"strings"
)

// messageHeaderPattern enforces the canonical Conventional Commits header
// format: <type>[(<scope>)][!]: <subject>.
const (
	messageHeaderPattern = `^([a-z]+)(?:\(([^)]+)\))?(!)?:\s*(.+)$`
)

// MessageHeaderRegexp is the compiled form of messageHeaderPattern, exported
// so callers can validate a header line without parsing a whole message.
var MessageHeaderRegexp = regexp.MustCompile(messageHeaderPattern)

// Message is a parsed Conventional Commit message: required Type and
// Subject, optional Scope, a Breaking flag derived from either the header
// "!" marker or a BREAKING CHANGE/BREAKING-CHANGE trailer, an optional
// Body, and zero or more Trailers.
type Message struct {
	Type     Type
	Scope    Scope
	Subject  Subject
	Breaking bool
	Body     Body
	Trailers []Trailer
}

// ParseMessage parses a raw commit message string into a Message.
//
// Parsing proceeds in stages: the header line is matched against
// MessageHeaderRegexp and its type/scope/subject components validated
// individually; a backwards scan over the remaining lines then separates
// the optional body from a trailing block of git-style trailers. A
// "BREAKING CHANGE:" (space) or "BREAKING-CHANGE:" (hyphen) footer sets
// Breaking, in addition to the header "!" marker; "BREAKING CHANGE:" is
// not valid git trailer syntax but is still captured as a Trailer for
// completeness.
func ParseMessage(s string) (Message, error) {
	if s == "" {
		return Message{}, fmt.Errorf("message cannot be empty")
	}

	normalized := strings.ReplaceAll(s, "\r\n", "\n")
	normalized = strings.TrimSpace(normalized)
	lines := strings.Split(normalized, "\n")
	if len(lines) == 0 {
		return Message{}, fmt.Errorf("message cannot be empty")
	}

	commitType, scope, breaking, subject, err := parseMessageHeader(lines[0])
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		Type:     commitType,
		Scope:    scope,
		Subject:  subject,
		Breaking: breaking,
	}

	if len(lines) == 1 {
		return msg, nil
	}

	contentStartIdx := findContentStart(lines)
	if contentStartIdx == -1 {
		return msg, nil
	}

	trailerStartIdx := findTrailerStart(lines, contentStartIdx)

	body, err := extractBody(lines, contentStartIdx, trailerStartIdx)
	if err != nil {
		return Message{}, fmt.Errorf("invalid body: %w", err)
	}
	msg.Body = body

	trailers, hasBreakingChange, err := extractTrailers(lines, trailerStartIdx)
	if err != nil {
		return Message{}, fmt.Errorf("invalid trailers: %w", err)
	}
	msg.Trailers = trailers

	if hasBreakingChange {
		msg.Breaking = true
	}

	return msg, nil
}

// parseMessageHeader parses and validates the first line of a commit
// message, extracting type, scope, breaking marker, and subject.
func parseMessageHeader(headerLine string) (commitType Type, scope Scope, breaking bool, subject Subject, err error) {
	header := strings.TrimSpace(headerLine)
	matches := MessageHeaderRegexp.FindStringSubmatch(header)
	if matches == nil {
		return Type(0), Scope(""), false, Subject(""), fmt.Errorf("invalid Conventional Commit header format: %q", header)
	}

	typeStr := matches[1]
	scopeStr := matches[2]
	breakingMarker := matches[3]
	subjectStr := matches[4]

	commitType, err = ParseType(typeStr)
	if err != nil {
		return Type(0), Scope(""), false, Subject(""), fmt.Errorf("invalid type: %w", err)
	}

	if scopeStr != "" {
		scope, err = ParseScope(scopeStr)
		if err != nil {
			return Type(0), Scope(""), false, Subject(""), fmt.Errorf("invalid scope: %w", err)
		}
	}

	subject, err = ParseSubject(subjectStr)
	if err != nil {
		return Type(0), Scope(""), false, Subject(""), fmt.Errorf("invalid subject: %w", err)
	}

	breaking = breakingMarker == "!"

	return commitType, scope, breaking, subject, nil
}

// findContentStart finds the index of the first non-blank line after the
// header. Returns -1 if no content exists (only blank lines after header).
func findContentStart(lines []string) int {
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// isTrailerOrBreakingChange reports whether line looks like a trailer or a
// BREAKING CHANGE/BREAKING-CHANGE footer marker.
func isTrailerOrBreakingChange(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "BREAKING CHANGE:") || strings.HasPrefix(line, "BREAKING CHANGE ") {
		return true
	}

	colonIdx := strings.Index(line, ":")
	if colonIdx == -1 {
		return false
	}
	key := strings.TrimSpace(line[:colonIdx])
	return TrailerKeyRegexp.MatchString(key)
}

// findTrailerStart uses backwards scanning to find where the trailer block
// starts. Returns -1 if no trailers are found.
func findTrailerStart(lines []string, contentStartIdx int) int {
	if contentStartIdx == -1 {
		return -1
	}

	lastNonBlankIdx := -1
	for i := len(lines) - 1; i >= contentStartIdx; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			lastNonBlankIdx = i
			break
		}
	}

	if lastNonBlankIdx == -1 {
		return -1
	}

	trailerStartIdx := -1
	inTrailers := true

	for i := lastNonBlankIdx; i >= contentStartIdx; i-- {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			if inTrailers && trailerStartIdx == -1 {
				trailerStartIdx = i + 1
				break
			}
			continue
		}

		if !isTrailerOrBreakingChange(lines[i]) {
			inTrailers = false
		}
	}

	if inTrailers && trailerStartIdx == -1 {
		trailerStartIdx = contentStartIdx
	}

	return trailerStartIdx
}

// extractBody extracts body text from lines between contentStart and
// trailerStart. Returns empty Body if no body content exists.
func extractBody(lines []string, contentStartIdx, trailerStartIdx int) (Body, error) {
	if contentStartIdx == -1 {
		return Body(""), nil
	}

	var bodyEndIdx int

	if trailerStartIdx != -1 && trailerStartIdx > contentStartIdx {
		bodyEndIdx = trailerStartIdx
		for i := trailerStartIdx - 1; i >= contentStartIdx; i-- {
			if strings.TrimSpace(lines[i]) != "" {
				bodyEndIdx = i + 1
				break
			}
		}
	} else if trailerStartIdx == -1 {
		bodyEndIdx = len(lines)
	} else {
		return Body(""), nil
	}

	if contentStartIdx >= bodyEndIdx {
		return Body(""), nil
	}

	bodyLines := lines[contentStartIdx:bodyEndIdx]
	bodyText := strings.Join(bodyLines, "\n")
	bodyText = strings.TrimSpace(bodyText)

	if bodyText == "" {
		return Body(""), nil
	}

	return ParseBody(bodyText)
}

// extractTrailers extracts and parses all trailer lines from the trailer
// block, also reporting whether a BREAKING CHANGE/BREAKING-CHANGE footer
// marker was found.
func extractTrailers(lines []string, trailerStartIdx int) ([]Trailer, bool, error) {
	if trailerStartIdx == -1 {
		return nil, false, nil
	}

	var trailers []Trailer
	hasBreakingChange := false

	for i := trailerStartIdx; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "BREAKING CHANGE:") {
			hasBreakingChange = true
			value := strings.TrimSpace(strings.TrimPrefix(line, "BREAKING CHANGE:"))
			trailers = append(trailers, Trailer{
				Key:   "BREAKING CHANGE",
				Value: value,
			})
			continue
		}

		trailer, err := ParseTrailer(line)
		if err != nil {
			continue
		}

		trailers = append(trailers, trailer)

		if trailer.Key == "BREAKING-CHANGE" {
			hasBreakingChange = true
		}
	}

	return trailers, hasBreakingChange, nil
}
