// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestListenPortValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ListenPort
		wantValid bool
	}{
		{name: "default port is valid", value: DefaultListenPort, wantValid: true},
		{name: "one is valid", value: 1, wantValid: true},
		{name: "65535 is valid", value: 65535, wantValid: true},
		{name: "zero is invalid", value: 0, wantValid: false},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "65536 is invalid", value: 65536, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("ListenPort(%d).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidListenPort) {
				t.Errorf("error does not wrap ErrInvalidListenPort: %v", err)
			}
		})
	}
}

func TestListenPortString(t *testing.T) {
	t.Parallel()

	if got := DefaultListenPort.String(); got != "8080" {
		t.Errorf("DefaultListenPort.String() = %q, want %q", got, "8080")
	}
}
