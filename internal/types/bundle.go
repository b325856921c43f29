package types

import "sort"

// BundleRecord is one ledger line or one bundle discovered in the dropins
// directory.
type BundleRecord struct {
	SymbolicName string
	Version      string
	Path         string
	StartLevel   int
	Fragment     bool
	Origin       BundleOrigin
}

// SameIdentity reports whether two records describe the same bundle:
// equal symbolic name, version and fragment-ness.
func (r BundleRecord) SameIdentity(other BundleRecord) bool {
	return r.SymbolicName == other.SymbolicName &&
		r.Version == other.Version &&
		r.Fragment == other.Fragment
}

// ScanIssue describes a dropins file that could not be used as a candidate.
type ScanIssue struct {
	File   string
	Reason string
}

// Ledger is an immutable snapshot of bundle records grouped by symbolic
// name. Records under one name keep their insertion order.
type Ledger struct {
	entries map[string][]BundleRecord
}

func NewLedger(entries map[string][]BundleRecord) Ledger {
	copied := make(map[string][]BundleRecord, len(entries))
	for name, records := range entries {
		if len(records) == 0 {
			continue
		}
		copied[name] = append([]BundleRecord(nil), records...)
	}
	return Ledger{entries: copied}
}

// Names returns the symbolic names in lexicographic order.
func (l Ledger) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the records stored under name.
func (l Ledger) Get(name string) []BundleRecord {
	records, ok := l.entries[name]
	if !ok {
		return nil
	}
	return append([]BundleRecord(nil), records...)
}

// Records flattens the ledger in write order: names sorted, in-name order
// preserved.
func (l Ledger) Records() []BundleRecord {
	var records []BundleRecord
	for _, name := range l.Names() {
		records = append(records, l.entries[name]...)
	}
	return records
}

func (l Ledger) Len() int {
	count := 0
	for _, records := range l.entries {
		count += len(records)
	}
	return count
}

// Entries returns a deep copy of the name to records mapping.
func (l Ledger) Entries() map[string][]BundleRecord {
	copied := make(map[string][]BundleRecord, len(l.entries))
	for name, records := range l.entries {
		copied[name] = append([]BundleRecord(nil), records...)
	}
	return copied
}

// MergeDecision records what happened to one dropins candidate.
type MergeDecision struct {
	Candidate    BundleRecord
	Action       MergeAction
	ExistingPath string
	Reason       string
}

// LedgerDiffResult is the output of the diff stage.
type LedgerDiffResult struct {
	Ledger Ledger
	Pruned []BundleRecord
}

// LedgerMergeResult is the output of the merge stage.
type LedgerMergeResult struct {
	Ledger    Ledger
	Decisions []MergeDecision
}
