// SPDX-License-Identifier: MPL-2.0

// Package detect runs the function detector and interprets its verdict.
//
// The detector is part of the runtime artifact itself: it is spawned as an
// external process against the application directory and writes a manifest
// describing the single deployable function into its own layer. Its exit
// code is a narrow contract; Classify maps every status to exactly one
// Outcome. Detection output is never cached: the layer is rebuilt on every
// run.
package detect
