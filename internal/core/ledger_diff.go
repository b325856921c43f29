package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"carbon-dropins/internal/policies"
	"carbon-dropins/internal/types"
)

// LedgerDiff drops dropins-originated ledger entries whose bundle is no
// longer present in the dropins directory.
type LedgerDiff struct {
	policy policies.DropinsPolicy
}

func NewLedgerDiff(policy policies.DropinsPolicy) LedgerDiff {
	return LedgerDiff{policy: policy}
}

func (d LedgerDiff) Diff(ctx context.Context, existing []types.BundleRecord, candidates []types.BundleRecord) (types.LedgerDiffResult, error) {
	if err := ctx.Err(); err != nil {
		return types.LedgerDiffResult{}, err
	}
	entries := map[string][]types.BundleRecord{}
	var pruned []types.BundleRecord
	for _, record := range existing {
		assert.NotEmpty(ctx, record.SymbolicName, "ledger record must carry a symbolic name")
		record.Origin = d.policy.Classify(record.Path)
		if record.Origin == types.BundleOriginDropins && !hasIdentity(candidates, record) {
			log.Info().
				Str("bundle", record.SymbolicName).
				Str("version", record.Version).
				Str("path", record.Path).
				Msg("removing stale dropins bundle")
			pruned = append(pruned, record)
			continue
		}
		if hasDuplicate(entries[record.SymbolicName], record) {
			log.Debug().
				Str("bundle", record.SymbolicName).
				Str("path", record.Path).
				Msg("collapsing duplicate ledger entry")
			continue
		}
		entries[record.SymbolicName] = append(entries[record.SymbolicName], record)
	}
	return types.LedgerDiffResult{
		Ledger: types.NewLedger(entries),
		Pruned: pruned,
	}, nil
}

func hasIdentity(candidates []types.BundleRecord, record types.BundleRecord) bool {
	for _, candidate := range candidates {
		if candidate.SameIdentity(record) {
			return true
		}
	}
	return false
}

func hasDuplicate(records []types.BundleRecord, record types.BundleRecord) bool {
	for _, existing := range records {
		if existing.SameIdentity(record) && existing.Path == record.Path {
			return true
		}
	}
	return false
}
