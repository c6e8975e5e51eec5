// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"

	"fnbuild/internal/buildcfg"
	"fnbuild/internal/layer"
)

// ArtifactFileName is the runtime jar's file name inside its layer. The
// launch command and the detector both address the artifact through this
// name, so it is part of the layer's on-disk contract.
const ArtifactFileName = "runtime.jar"

// Metadata keys persisted into the runtime layer. The fingerprint is what
// the next build's cache decision reads back; the url records where the
// artifact came from.
const (
	urlKey         = "url"
	fingerprintKey = "fingerprint"
)

// Result contains the outcome of a provisioning operation.
type Result struct {
	// ArtifactPath is the path of the installed runtime jar.
	ArtifactPath string
	// FromCache reports whether the artifact was reused from a prior
	// build rather than downloaded.
	FromCache bool
}

// Fetcher retrieves a remote artifact into a local file. Implemented by
// fetch.Fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

// Provisioner installs the function runtime artifact into a layer.
type Provisioner interface {
	// Ensure makes the runtime jar described by desc available inside l,
	// downloading it unless the layer already holds a matching artifact.
	// Returns the artifact path.
	Ensure(ctx context.Context, l *layer.Layer, desc buildcfg.RuntimeDescriptor) (*Result, error)
}
