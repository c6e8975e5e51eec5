// SPDX-License-Identifier: MPL-2.0

// Package cnb binds the build phase to the Cloud Native Buildpacks platform
// contract: the three positional directories handed to bin/build, the
// buildpack's own root directory from CNB_BUILDPACK_DIR, and the per-variable
// files under <platform>/env.
package cnb
