// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting value types shared by the build
// pipeline packages (layer, provision, detect, launch). These types carry
// semantic meaning and validation but have no domain-specific dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types

import (
	"errors"
	"fmt"
)

// ErrInvalidSha256Digest is the sentinel error wrapped by InvalidSha256DigestError.
var ErrInvalidSha256Digest = errors.New("invalid sha256 digest")

type (
	// Sha256Digest represents a hex-encoded SHA-256 content fingerprint.
	// A valid digest is exactly 64 lowercase-or-uppercase hex characters.
	// The zero value ("") means "no digest recorded" and never matches
	// any other digest, including another zero value.
	Sha256Digest string

	// InvalidSha256DigestError is returned when a Sha256Digest value is
	// not 64 hex characters.
	InvalidSha256DigestError struct {
		Value Sha256Digest
	}
)

// String returns the hex string representation of the Sha256Digest.
func (d Sha256Digest) String() string { return string(d) }

// IsZero reports whether no digest has been recorded.
func (d Sha256Digest) IsZero() bool { return d == "" }

// Matches reports whether d and other are the same recorded digest. A
// zero-value digest matches nothing, including another zero value.
func (d Sha256Digest) Matches(other Sha256Digest) bool {
	return d != "" && d == other
}

// Validate returns an error if the Sha256Digest is non-zero and not a
// 64-character hex string. The zero value is valid (it means "absent").
func (d Sha256Digest) Validate() error {
	if d == "" {
		return nil
	}
	if len(d) != 64 {
		return &InvalidSha256DigestError{Value: d}
	}
	for _, c := range d {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return &InvalidSha256DigestError{Value: d}
		}
	}
	return nil
}

// Error implements the error interface for InvalidSha256DigestError.
func (e *InvalidSha256DigestError) Error() string {
	return fmt.Sprintf("invalid sha256 digest %q: must be 64 hex characters", e.Value)
}

// Unwrap returns ErrInvalidSha256Digest for errors.Is() compatibility.
func (e *InvalidSha256DigestError) Unwrap() error { return ErrInvalidSha256Digest }
