// SPDX-License-Identifier: MPL-2.0

// Package buildcfg loads the buildpack descriptor (buildpack.toml) that
// pins the function runtime artifact for a build.
//
// The descriptor is parsed as TOML, validated against a CUE schema
// (buildpack_schema.cue), and merged with defaults through Viper. The
// build phase consumes the metadata.runtime table: the artifact URL, its
// expected SHA-256 fingerprint, the optional verify toggle, and the
// optional launcher argv override. A descriptor missing the runtime table
// or either of its url/sha256 keys fails the build before any network
// activity.
package buildcfg
