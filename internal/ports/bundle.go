package ports

import (
	"context"

	"carbon-dropins/internal/types"
)

// BundleScannerPort discovers candidate bundles in a dropins directory.
type BundleScannerPort interface {
	// Scan returns the usable candidates in directory order together with
	// the files that were skipped. Per-file problems never fail the scan.
	Scan(ctx context.Context, dir string) ([]types.BundleRecord, []types.ScanIssue, error)
}

// ManifestReaderPort reads OSGi identity headers out of a bundle archive.
type ManifestReaderPort interface {
	ReadManifest(path string) (map[string]string, error)
}
