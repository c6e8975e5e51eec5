// SPDX-License-Identifier: MPL-2.0

// Package launch emits the launch description consumed by the run phase.
//
// The build phase's only output crossing the phase boundary is a single
// default "web" process whose command starts the runtime artifact against
// the detected function's layer. The service port appears in the command
// as a literal ${PORT:-fallback} placeholder: it is resolved by the shell
// at launch time, never during the build.
package launch
