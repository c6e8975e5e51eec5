// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"os"

	"fnbuild/internal/buildcfg"
	"fnbuild/internal/digest"
	"fnbuild/internal/issue"
	"fnbuild/internal/layer"
	"fnbuild/internal/phase"
	"fnbuild/pkg/types"
)

// RuntimeProvisioner implements Provisioner by downloading the runtime jar
// over HTTP and caching it in its layer keyed on the descriptor's expected
// fingerprint.
type RuntimeProvisioner struct {
	fetcher Fetcher
	log     *phase.Logger
}

// Compile-time check that RuntimeProvisioner implements Provisioner.
var _ Provisioner = (*RuntimeProvisioner)(nil)

// NewRuntimeProvisioner creates a RuntimeProvisioner that downloads through
// fetcher and reports progress through log.
func NewRuntimeProvisioner(fetcher Fetcher, log *phase.Logger) *RuntimeProvisioner {
	return &RuntimeProvisioner{
		fetcher: fetcher,
		log:     log,
	}
}

// Ensure makes the runtime jar described by desc available inside l.
//
// A layer whose recorded fingerprint matches the descriptor and whose
// artifact file is still present is reused without any writes. Otherwise
// the layer's facets and metadata are persisted first and the artifact is
// downloaded, optionally followed by an integrity check of the downloaded
// bytes. Every failure past the cache decision is fatal for the phase; no
// retries.
func (p *RuntimeProvisioner) Ensure(ctx context.Context, l *layer.Layer, desc buildcfg.RuntimeDescriptor) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	artifactPath := l.File(ArtifactFileName)

	metadata, err := l.ReadMetadata()
	if err != nil {
		return nil, err
	}
	cached := types.Sha256Digest(metadata.String(fingerprintKey))

	if CacheValid(desc, cached, fileExists(artifactPath)) {
		p.log.Info("Installed Java function runtime from cache")
		return &Result{ArtifactPath: artifactPath, FromCache: true}, nil
	}

	p.log.Debug("Creating function runtime layer")
	facets := layer.Facets{Launch: true, Build: false, Cache: true}
	err = l.WriteMetadata(facets, layer.Metadata{
		urlKey:         desc.URL,
		fingerprintKey: desc.ExpectedFingerprint.String(),
	})
	if err != nil {
		return nil, err
	}
	p.log.Debug("Function runtime layer successfully created")

	p.log.Info("Starting download of function runtime")
	p.log.Diag().Debug("resolved runtime artifact",
		"url", desc.URL, "fingerprint", desc.ExpectedFingerprint.String())
	if err := p.fetcher.Fetch(ctx, desc.URL, artifactPath); err != nil {
		return nil, p.log.Error("Download of function runtime failed",
			downloadFailedBody(desc.URL)).WithIssue(issue.RuntimeDownloadFailedId)
	}
	p.log.Info("Function runtime download successful")

	if desc.Verify {
		actual, err := digest.FileSha256(artifactPath)
		if err != nil {
			return nil, err
		}
		p.log.Diag().Debug("computed runtime artifact digest",
			"computed", actual.String(), "expected", desc.ExpectedFingerprint.String())
		if !desc.ExpectedFingerprint.Matches(actual) {
			return nil, p.log.Error("Function runtime integrity check failed",
				integrityFailedBody).WithIssue(issue.RuntimeChecksumMismatchId)
		}
	}

	p.log.Info("Function runtime installation successful")
	return &Result{ArtifactPath: artifactPath}, nil
}

func downloadFailedBody(url string) string {
	return fmt.Sprintf("We couldn't download the function runtime at %s.\n\n"+
		"This is usually caused by intermittent network issues. "+
		"Please try again and contact us should the error persist.", url)
}

const integrityFailedBody = "We could not verify the integrity of the downloaded function runtime.\n" +
	"Please try again and contact us should the error persist."

// fileExists reports whether path exists; any stat error counts as absent.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
