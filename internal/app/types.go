package app

import "carbon-dropins/internal/types"

// LayoutRequest carries the path settings shared by every operation.
// Explicit paths win over the ones derived from ComponentsDir.
type LayoutRequest struct {
	ComponentsDir string
	Profile       string
	DropinsDir    string
	LedgerPath    string
	BundlePattern string
	DropinsPrefix string
	StartLevel    int
}

type ReconcileRequest struct {
	LayoutRequest
	DryRun     bool
	ReportPath string
}

type ReconcileResult struct {
	LedgerFound bool
	Written     bool
	DryRun      bool
	Deployed    int
	Present     int
	Refused     int
	Pruned      int
	Skipped     int
	Ledger      types.Ledger
	Report      types.ReconcileReport
}

type ScanRequest struct {
	LayoutRequest
}

type ScanResult struct {
	DropinsDir string
	Records    []types.BundleRecord
	Issues     []types.ScanIssue
}

type InspectRequest struct {
	LayoutRequest
}

type InspectResult struct {
	View types.LedgerView
}

type ValidateRequest struct {
	LayoutRequest
}

type ValidateResult struct {
	LedgerPath string
	Records    int
	Violations []string
}
