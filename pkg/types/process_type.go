// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidProcessType is the sentinel error wrapped by InvalidProcessTypeError.
var ErrInvalidProcessType = errors.New("invalid process type")

// ProcessTypeWeb is the conventional process type the run phase starts by
// default when no explicit type is requested.
const ProcessTypeWeb ProcessType = "web"

type (
	// ProcessType names a launch process entry. The platform restricts
	// process type names to lowercase letters, digits, and the characters
	// '.', '_', and '-'. The zero value ("") is invalid.
	ProcessType string

	// InvalidProcessTypeError is returned when a ProcessType value is
	// empty or contains a disallowed character.
	InvalidProcessTypeError struct {
		Value ProcessType
	}
)

// String returns the string representation of the ProcessType.
func (p ProcessType) String() string { return string(p) }

// Validate returns an error if the ProcessType is empty or contains a
// character outside [a-z0-9._-].
func (p ProcessType) Validate() error {
	if p == "" {
		return &InvalidProcessTypeError{Value: p}
	}
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return &InvalidProcessTypeError{Value: p}
		}
	}
	return nil
}

// Error implements the error interface for InvalidProcessTypeError.
func (e *InvalidProcessTypeError) Error() string {
	return fmt.Sprintf("invalid process type %q: must match [a-z0-9._-]+", e.Value)
}

// Unwrap returns ErrInvalidProcessType for errors.Is() compatibility.
func (e *InvalidProcessTypeError) Unwrap() error { return ErrInvalidProcessType }
