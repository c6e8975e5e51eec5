// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"errors"
	"fmt"
	"strings"

	"fnbuild/pkg/types"
)

// DescriptorFileName is the buildpack descriptor file name inside the
// buildpack directory.
const DescriptorFileName = "buildpack.toml"

var (
	// ErrMissingRuntimeKey is the sentinel error wrapped by MissingRuntimeKeyError.
	ErrMissingRuntimeKey = errors.New("missing runtime key")
	// ErrInvalidLauncher is returned when a launcher override is declared empty.
	ErrInvalidLauncher = errors.New("invalid launcher: must name at least one argv element")
)

type (
	// Info identifies the buildpack, straight from the [buildpack] table.
	Info struct {
		ID      string `mapstructure:"id"`
		Version string `mapstructure:"version"`
		Name    string `mapstructure:"name"`
	}

	// RuntimeDescriptor pins the function runtime artifact this build must
	// provision: where to fetch it and the fingerprint it is expected to
	// carry. The fingerprint is recorded for cache comparison regardless of
	// Verify; Verify only gates the post-download integrity check.
	RuntimeDescriptor struct {
		// URL is the artifact location. Never empty on a validated descriptor.
		URL string

		// ExpectedFingerprint is the digest declared in buildpack.toml. It may
		// be zero when the upstream publishes no stable digest; a zero value
		// can never produce a cache hit.
		ExpectedFingerprint types.Sha256Digest

		// Verify enables the integrity check after download. Off unless the
		// descriptor asks for it.
		Verify bool

		// Launcher is the argv prefix used to run the artifact.
		// Defaults to ["java", "-jar"].
		Launcher []string
	}

	// Buildpack is the validated descriptor handed to the build phase.
	Buildpack struct {
		API     string
		Info    Info
		Runtime RuntimeDescriptor
	}

	// MissingRuntimeKeyError reports a required buildpack.toml key that is
	// absent or empty. It wraps ErrMissingRuntimeKey for errors.Is().
	MissingRuntimeKeyError struct {
		Key string
	}
)

// Error implements the error interface for MissingRuntimeKeyError.
func (e *MissingRuntimeKeyError) Error() string {
	return fmt.Sprintf("buildpack.toml does not have %q key", e.Key)
}

// Unwrap returns ErrMissingRuntimeKey for errors.Is() compatibility.
func (e *MissingRuntimeKeyError) Unwrap() error { return ErrMissingRuntimeKey }

// DefaultLauncher returns the argv prefix used when the descriptor does not
// override it. Returns a fresh slice on every call.
func DefaultLauncher() []string {
	return []string{"java", "-jar"}
}

// Validate checks descriptor consistency after loading.
func (d RuntimeDescriptor) Validate() error {
	if strings.TrimSpace(d.URL) == "" {
		return &MissingRuntimeKeyError{Key: "metadata.runtime.url"}
	}
	if err := d.ExpectedFingerprint.Validate(); err != nil {
		return err
	}
	if len(d.Launcher) == 0 {
		return ErrInvalidLauncher
	}
	return nil
}

// Validate checks the whole descriptor.
func (b *Buildpack) Validate() error {
	return b.Runtime.Validate()
}
