// SPDX-License-Identifier: MPL-2.0

package buildcfg

import "context"

// LoadOptions defines explicit descriptor loading inputs.
type LoadOptions struct {
	// BuildpackDir is the buildpack root directory holding buildpack.toml.
	BuildpackDir string
}

// Provider loads the buildpack descriptor from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Buildpack, error)
}

type fileProvider struct{}

// NewProvider creates a descriptor provider backed by the filesystem.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads the descriptor from the requested buildpack directory.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Buildpack, error) {
	return loadDescriptor(ctx, opts.BuildpackDir)
}
