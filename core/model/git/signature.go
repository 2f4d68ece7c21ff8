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

package git

import (
	"fmt"
	"net/mail"
	"time"

	"dirpx.dev/monover/core/errors"
)

const (
	// SignatureNameMaxLength is the maximum allowed length, in bytes, for a
	// signature name (author or committer name).
	SignatureNameMaxLength = 256

	// SignatureEmailMaxLength is the maximum allowed length, in bytes, for a
	// signature email address, per RFC 5321.
	SignatureEmailMaxLength = 254
)

// Signature is a Git identity (author or committer) with its associated
// timestamp.
//
// The zero value represents "no signature specified" and fails Validate.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// NewSignature builds a Signature from name, email, and when, validating
// the result before returning it.
func NewSignature(name string, email string, when time.Time) (Signature, error) {
	sig := Signature{Name: name, Email: email, When: when}
	if err := sig.Validate(); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// String returns a debug representation of s.
func (s Signature) String() string {
	return fmt.Sprintf("Signature{Name:%s, Email:%s, When:%s}",
		s.Name, s.Email, s.When.Format(time.RFC3339))
}

// IsZero reports whether s is the zero value.
func (s Signature) IsZero() bool {
	return s.Name == "" && s.Email == "" && s.When.IsZero()
}

// Equal reports whether s and other describe the same identity at the same
// timestamp.
func (s Signature) Equal(other Signature) bool {
	return s.Name == other.Name &&
		s.Email == other.Email &&
		s.When.Equal(other.When)
}

// Validate reports whether s satisfies the invariants of a Git identity:
// non-empty Name and Email within their length limits, Email parseable per
// RFC 5322, and a non-zero When.
func (s Signature) Validate() error {
	if s.Name == "" {
		return &errors.ValidationError{Type: "Signature", Field: "Name", Reason: "must not be empty"}
	}
	if len(s.Name) > SignatureNameMaxLength {
		return &errors.ValidationError{Type: "Signature", Field: "Name", Reason: fmt.Sprintf("exceeds maximum length of %d characters (got %d)", SignatureNameMaxLength, len(s.Name))}
	}

	if s.Email == "" {
		return &errors.ValidationError{Type: "Signature", Field: "Email", Reason: "must not be empty"}
	}
	if len(s.Email) > SignatureEmailMaxLength {
		return &errors.ValidationError{Type: "Signature", Field: "Email", Reason: fmt.Sprintf("exceeds maximum length of %d characters (got %d)", SignatureEmailMaxLength, len(s.Email))}
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return &errors.ValidationError{Type: "Signature", Field: "Email", Reason: fmt.Sprintf("has invalid format: %q (%v)", s.Email, err)}
	}

	if s.When.IsZero() {
		return &errors.ValidationError{Type: "Signature", Field: "When", Reason: "must not be zero"}
	}

	return nil
}
