// SPDX-License-Identifier: MPL-2.0

// Package build wires the build phase end to end: load the buildpack
// descriptor, provision the function runtime into its layer, run function
// detection, and emit the launch description. The sequence is strictly
// ordered and nothing is recovered locally; the first failure terminates
// the phase and the CLI layer renders it.
package build
