// SPDX-License-Identifier: MPL-2.0

// Package digest computes the content fingerprints the cache decision is
// keyed on. SHA-256 hex is the only algorithm; a fingerprint is
// deterministic for given bytes and always succeeds, including for empty
// input.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"fnbuild/pkg/types"
)

// Sha256Hex returns the hex-encoded SHA-256 fingerprint of b.
func Sha256Hex(b []byte) types.Sha256Digest {
	sum := sha256.Sum256(b)
	return types.Sha256Digest(hex.EncodeToString(sum[:]))
}

// FileSha256 returns the hex-encoded SHA-256 fingerprint of the file's
// contents, streaming so a large runtime artifact is never held in memory.
func FileSha256(path string) (types.Sha256Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for fingerprinting: %w", path, err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to fingerprint %s: %w", path, err)
	}

	return types.Sha256Digest(hex.EncodeToString(h.Sum(nil))), nil
}
