package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"carbon-dropins/internal/policies"
	"carbon-dropins/internal/types"
)

// LedgerMerge adds dropins candidates to a diffed ledger snapshot.
type LedgerMerge struct{}

func NewLedgerMerge() LedgerMerge {
	return LedgerMerge{}
}

// Merge returns a new ledger; base is not modified. Candidates are visited
// in order and newly deployed records are appended after the surviving
// records of their symbolic name.
func (m LedgerMerge) Merge(ctx context.Context, base types.Ledger, candidates []types.BundleRecord) (types.LedgerMergeResult, error) {
	if err := ctx.Err(); err != nil {
		return types.LedgerMergeResult{}, err
	}
	entries := base.Entries()
	decisions := make([]types.MergeDecision, 0, len(candidates))
	for _, candidate := range candidates {
		assert.NotEmpty(ctx, candidate.SymbolicName, "candidate must carry a symbolic name")
		assert.NotEmpty(ctx, candidate.Version, "candidate must carry a version")
		candidate.Origin = types.BundleOriginDropins

		decision := policies.ResolveCandidate(entries[candidate.SymbolicName], candidate)
		switch decision.Action {
		case types.MergeActionDeployed:
			entries[candidate.SymbolicName] = append(entries[candidate.SymbolicName], candidate)
			log.Info().
				Str("bundle", candidate.SymbolicName).
				Str("version", candidate.Version).
				Str("path", candidate.Path).
				Bool("fragment", candidate.Fragment).
				Msg("deploying dropins bundle")
		case types.MergeActionRefused:
			log.Warn().
				Str("bundle", candidate.SymbolicName).
				Str("version", candidate.Version).
				Str("path", candidate.Path).
				Str("existing_path", decision.ExistingPath).
				Msg(decision.Reason)
		default:
			log.Debug().
				Str("bundle", candidate.SymbolicName).
				Str("version", candidate.Version).
				Msg("dropins bundle already registered")
		}
		decisions = append(decisions, decision)
	}
	return types.LedgerMergeResult{
		Ledger:    types.NewLedger(entries),
		Decisions: decisions,
	}, nil
}
