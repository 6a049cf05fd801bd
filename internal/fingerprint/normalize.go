// Package fingerprint implements scan-root-relative path normalization and
// the dedup pass of §4.6: collapsing candidates that share an identity into
// one Finding with a union of locations.
package fingerprint

import (
	"path/filepath"

	"github.com/spikermint/vet/internal/domain/values"
)

// NormalizePath makes absPath relative to scanRoot (when non-empty) and
// converts it to the "/"-separated form fingerprints are computed over. If
// absPath cannot be made relative to scanRoot (different volume, or outside
// the root), it falls back to the absolute, slash-converted path.
func NormalizePath(scanRoot, absPath string) string {
	if scanRoot == "" {
		return values.NormalizePath(absPath)
	}
	rel, err := filepath.Rel(scanRoot, absPath)
	if err != nil {
		return values.NormalizePath(absPath)
	}
	return values.NormalizePath(rel)
}
