// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE validation pattern used across the
// buildcfg and detect packages:
//
//  1. Compile the embedded schema
//  2. Compile (or encode) user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed buildpack_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ValidateAndDecode[Buildpack](
//	    schemaBytes,
//	    decodedToml,
//	    "#Buildpack",
//	    cueutil.WithFilename("buildpack.toml"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the document path for debugging
//	}
//	return result.Value, nil
package cueutil
