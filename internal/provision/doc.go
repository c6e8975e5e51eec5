// SPDX-License-Identifier: MPL-2.0

// Package provision installs the Java function runtime into its layer.
//
// The runtime jar is downloaded once and reused across builds: each layer
// records the fingerprint of the artifact it was provisioned with, and a
// later build whose descriptor carries the same fingerprint skips the
// download entirely. The cache decision itself is a pure function
// (CacheValid).
//
// The main entry point is the Provisioner interface, implemented by
// RuntimeProvisioner:
//
//	provisioner := provision.NewRuntimeProvisioner(fetch.NewFetcher(), log)
//	result, err := provisioner.Ensure(ctx, runtimeLayer, bp.Runtime)
//	// result.ArtifactPath points at the installed runtime.jar
//
// Facets and metadata are persisted before the download starts; every
// failure past the cache decision is fatal for the build.
package provision
