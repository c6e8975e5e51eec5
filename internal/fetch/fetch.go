// SPDX-License-Identifier: MPL-2.0

// Package fetch retrieves the remote runtime artifact. One blocking GET
// per call, no retries and no resume; a failed fetch may leave a partial
// destination file behind.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Error describes a failed artifact retrieval: transport failure, a
// non-success response status, or a filesystem write failure. It wraps the
// underlying cause.
type Error struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Fetcher performs blocking HTTP retrievals of build-time artifacts.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher backed by a client without a timeout: the
// build phase lets the download run to natural completion.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// Fetch retrieves url and writes the full response body to destPath,
// overwriting any existing file. Any failure is returned as *Error.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &Error{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // Response body; close error non-critical

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{URL: url, Err: fmt.Errorf("unexpected response status %s", resp.Status)}
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return &Error{URL: url, Err: fmt.Errorf("failed to create destination file: %w", err)}
	}
	defer func() {
		if closeErr := dest.Close(); closeErr != nil && err == nil {
			err = &Error{URL: url, Err: fmt.Errorf("failed to close destination file: %w", closeErr)}
		}
	}()

	if _, err := io.Copy(dest, resp.Body); err != nil {
		return &Error{URL: url, Err: fmt.Errorf("failed to write response body: %w", err)}
	}

	return nil
}
