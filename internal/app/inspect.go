package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"carbon-dropins/internal/policies"
	"carbon-dropins/internal/types"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	layout, err := ResolveLayout(req.LayoutRequest)
	if err != nil {
		return InspectResult{}, err
	}
	ledger, err := s.loadLedger(ctx, layout)
	if err != nil {
		return InspectResult{}, err
	}
	view := types.LedgerView{Path: layout.LedgerPath}
	for _, name := range ledger.Names() {
		group := types.LedgerViewGroup{SymbolicName: name}
		for _, record := range ledger.Get(name) {
			group.Records = append(group.Records, types.LedgerViewEntry{
				Version:    record.Version,
				Path:       record.Path,
				StartLevel: record.StartLevel,
				Fragment:   record.Fragment,
				Origin:     string(record.Origin),
			})
		}
		view.Bundles = append(view.Bundles, group)
	}
	return InspectResult{View: view}, nil
}

// loadLedger reads the ledger into a snapshot without pruning anything.
func (s Service) loadLedger(ctx context.Context, layout types.Layout) (types.Ledger, error) {
	records, found, err := s.Ledger.Load(ctx, layout.LedgerPath)
	if err != nil {
		return types.Ledger{}, err
	}
	if !found {
		return types.Ledger{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("ledger not found: " + layout.LedgerPath)
	}
	policy := policies.NewDropinsPolicy(layout.DropinsPrefix, layout.StartLevel)
	entries := map[string][]types.BundleRecord{}
	for _, record := range records {
		record.Origin = policy.Classify(record.Path)
		entries[record.SymbolicName] = append(entries[record.SymbolicName], record)
	}
	return types.NewLedger(entries), nil
}
