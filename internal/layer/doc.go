// SPDX-License-Identifier: MPL-2.0

// Package layer implements the platform's layer store: named directories
// under the layers root, each paired with a <name>.toml file that records
// the layer's exposure facets under [types] and its persisted key-value
// state under [metadata].
//
// The store only reads and writes metadata and creates directories; it
// never deletes a layer. Cross-build persistence is the platform's job,
// driven by the cache facet.
package layer
