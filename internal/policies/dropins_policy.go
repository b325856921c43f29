package policies

import (
	"fmt"
	"strings"

	"carbon-dropins/internal/types"
)

// DropinsPolicy holds the conventions that tie ledger entries to the
// dropins directory.
type DropinsPolicy struct {
	Prefix     string
	StartLevel int
}

func NewDropinsPolicy(prefix string, startLevel int) DropinsPolicy {
	if strings.TrimSpace(prefix) == "" {
		prefix = types.DefaultDropinsPrefix
	}
	if startLevel <= 0 {
		startLevel = types.DefaultStartLevel
	}
	return DropinsPolicy{Prefix: prefix, StartLevel: startLevel}
}

// Classify derives the origin of a ledger path.
func (p DropinsPolicy) Classify(path string) types.BundleOrigin {
	if strings.HasPrefix(path, p.Prefix) {
		return types.BundleOriginDropins
	}
	return types.BundleOriginOther
}

// CandidatePath is the ledger location recorded for a dropins file.
func (p DropinsPolicy) CandidatePath(fileName string) string {
	return p.Prefix + fileName
}

// ResolveCandidate decides what happens to a candidate whose symbolic name
// is already present in the ledger. Existing entries always win: a
// candidate is only inserted when no existing record carries its version.
func ResolveCandidate(existing []types.BundleRecord, candidate types.BundleRecord) types.MergeDecision {
	match, found := findVersionMatch(existing, candidate)
	if !found {
		return types.MergeDecision{
			Candidate: candidate,
			Action:    types.MergeActionDeployed,
		}
	}
	decision := types.MergeDecision{
		Candidate:    candidate,
		ExistingPath: match.Path,
	}
	switch {
	case match.Path == candidate.Path:
		decision.Action = types.MergeActionPresent
	case match.Fragment != candidate.Fragment:
		decision.Action = types.MergeActionRefused
		decision.Reason = fmt.Sprintf("%s %s is registered as a %s at %s",
			candidate.SymbolicName, candidate.Version, bundleKind(match.Fragment), match.Path)
	default:
		decision.Action = types.MergeActionRefused
		decision.Reason = fmt.Sprintf("%s %s is already available in the system at %s",
			candidate.SymbolicName, candidate.Version, match.Path)
	}
	return decision
}

// findVersionMatch prefers a record with equal fragment-ness so that an
// existing bundle/fragment pair under one version resolves to the right
// half.
func findVersionMatch(existing []types.BundleRecord, candidate types.BundleRecord) (types.BundleRecord, bool) {
	var fallback *types.BundleRecord
	for i := range existing {
		record := existing[i]
		if record.Version != candidate.Version {
			continue
		}
		if record.Fragment == candidate.Fragment {
			return record, true
		}
		if fallback == nil {
			fallback = &existing[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return types.BundleRecord{}, false
}

func bundleKind(fragment bool) string {
	if fragment {
		return "fragment"
	}
	return "bundle"
}
