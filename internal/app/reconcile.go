package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"carbon-dropins/internal/core"
	"carbon-dropins/internal/policies"
	"carbon-dropins/internal/types"
)

// Reconcile brings the ledger in line with the dropins directory. A
// missing ledger is not an error: there is nothing to reconcile and
// nothing is written.
func (s Service) Reconcile(ctx context.Context, req ReconcileRequest) (ReconcileResult, error) {
	layout, err := ResolveLayout(req.LayoutRequest)
	if err != nil {
		return ReconcileResult{}, err
	}
	report := types.ReconcileReport{
		LedgerPath: layout.LedgerPath,
		DropinsDir: layout.DropinsDir,
		DryRun:     req.DryRun,
	}

	existing, found, err := s.Ledger.Load(ctx, layout.LedgerPath)
	if err != nil {
		return ReconcileResult{}, err
	}
	if !found {
		log.Debug().Str("path", layout.LedgerPath).Msg("ledger not found, nothing to reconcile")
		result := ReconcileResult{DryRun: req.DryRun, Report: report}
		return result, s.writeReport(req.ReportPath, report)
	}
	report.LedgerFound = true

	candidates, issues, err := s.NewScanner(layout).Scan(ctx, layout.DropinsDir)
	if err != nil {
		return ReconcileResult{}, err
	}

	policy := policies.NewDropinsPolicy(layout.DropinsPrefix, layout.StartLevel)
	diff, err := core.NewLedgerDiff(policy).Diff(ctx, existing, candidates)
	if err != nil {
		return ReconcileResult{}, err
	}
	merged, err := core.NewLedgerMerge().Merge(ctx, diff.Ledger, candidates)
	if err != nil {
		return ReconcileResult{}, err
	}

	result := ReconcileResult{
		LedgerFound: true,
		DryRun:      req.DryRun,
		Pruned:      len(diff.Pruned),
		Skipped:     len(issues),
		Ledger:      merged.Ledger,
	}
	for _, record := range diff.Pruned {
		report.Pruned = append(report.Pruned, reportEntry(record, "", ""))
	}
	for _, issue := range issues {
		report.Skipped = append(report.Skipped, types.ScanIssueEntry{File: issue.File, Reason: issue.Reason})
	}
	for _, decision := range merged.Decisions {
		switch decision.Action {
		case types.MergeActionDeployed:
			result.Deployed++
			report.Deployed = append(report.Deployed, reportEntry(decision.Candidate, "", ""))
		case types.MergeActionRefused:
			result.Refused++
			report.Refused = append(report.Refused, reportEntry(decision.Candidate, decision.ExistingPath, decision.Reason))
		default:
			result.Present++
		}
	}

	if !req.DryRun {
		if err := s.Ledger.Store(ctx, layout.LedgerPath, merged.Ledger); err != nil {
			return ReconcileResult{}, err
		}
		result.Written = true
		report.Written = true
	}
	log.Info().
		Str("ledger", layout.LedgerPath).
		Int("deployed", result.Deployed).
		Int("pruned", result.Pruned).
		Int("refused", result.Refused).
		Int("skipped", result.Skipped).
		Bool("dry_run", req.DryRun).
		Msg("dropins reconciled")

	result.Report = report
	return result, s.writeReport(req.ReportPath, report)
}

func (s Service) writeReport(path string, report types.ReconcileReport) error {
	if strings.TrimSpace(path) == "" || s.Reports == nil {
		return nil
	}
	return s.Reports.WriteReport(path, report)
}

func reportEntry(record types.BundleRecord, existingPath string, reason string) types.ReportEntry {
	return types.ReportEntry{
		SymbolicName: record.SymbolicName,
		Version:      record.Version,
		Path:         record.Path,
		Fragment:     record.Fragment,
		ExistingPath: existingPath,
		Reason:       reason,
	}
}
