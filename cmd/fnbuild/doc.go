// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for fnbuild.
//
// The command layer is a thin shell around internal/app/build: it resolves
// the platform-provided build context, picks the log verbosity, and maps
// failures to process exit codes. All build semantics live under internal/.
package cmd
