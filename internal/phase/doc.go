// SPDX-License-Identifier: MPL-2.0

// Package phase renders the build phase's user-facing narrative: section
// headers, info lines, gated debug lines, and warning/error blocks. Error
// is the one terminal operation; it renders the block and hands back a
// *Failure carrying the title, which the CLI layer turns into a non-zero
// exit without re-rendering.
//
// A charmbracelet/log diagnostics logger rides along for structured
// key-value output (detector argv, exit codes, resolved URLs); it shares
// the debug gate with the Debug method.
package phase
