package ports

import (
	"context"

	"carbon-dropins/internal/types"
)

// LedgerStorePort loads and replaces the bundles.info ledger.
type LedgerStorePort interface {
	// Load returns the non-comment records of the ledger. found is false
	// when the ledger file does not exist.
	Load(ctx context.Context, path string) (records []types.BundleRecord, found bool, err error)
	Store(ctx context.Context, path string, ledger types.Ledger) error
}

// ReportWriterPort persists a reconcile report.
type ReportWriterPort interface {
	WriteReport(path string, report types.ReconcileReport) error
}
