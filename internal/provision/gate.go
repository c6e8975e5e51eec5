// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fnbuild/internal/buildcfg"
	"fnbuild/pkg/types"
)

// CacheValid reports whether the layer's existing artifact can be reused
// for desc. Both conditions must hold: the fingerprint recorded by the
// build that provisioned the layer must match the descriptor's expected
// fingerprint, and the artifact file must still exist. Pure decision, no
// I/O.
func CacheValid(desc buildcfg.RuntimeDescriptor, cached types.Sha256Digest, artifactExists bool) bool {
	return desc.ExpectedFingerprint.Matches(cached) && artifactExists
}
