package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"carbon-dropins/internal/types"
)

// Validate checks the ledger for identity clashes and for dropins entries
// whose artifact is gone. It never writes.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	layout, err := ResolveLayout(req.LayoutRequest)
	if err != nil {
		return ValidateResult{}, err
	}
	ledger, err := s.loadLedger(ctx, layout)
	if err != nil {
		return ValidateResult{}, err
	}
	var violations []string
	for _, name := range ledger.Names() {
		records := ledger.Get(name)
		for i := range records {
			for j := i + 1; j < len(records); j++ {
				if records[i].SameIdentity(records[j]) && records[i].Path != records[j].Path {
					violations = append(violations, fmt.Sprintf("%s %s (fragment=%t) is registered twice: %s, %s",
						name, records[i].Version, records[i].Fragment, records[i].Path, records[j].Path))
				}
			}
		}
		for _, record := range records {
			if record.Origin != types.BundleOriginDropins {
				continue
			}
			missing, err := s.dropinsArtifactMissing(layout, record)
			if err != nil {
				return ValidateResult{}, err
			}
			if missing {
				violations = append(violations, fmt.Sprintf("%s %s points to a missing dropins file: %s",
					name, record.Version, record.Path))
			}
		}
	}
	return ValidateResult{
		LedgerPath: layout.LedgerPath,
		Records:    ledger.Len(),
		Violations: violations,
	}, nil
}

func (s Service) dropinsArtifactMissing(layout types.Layout, record types.BundleRecord) (bool, error) {
	name := strings.TrimPrefix(record.Path, layout.DropinsPrefix)
	exists, err := afero.Exists(s.Fs, filepath.Join(layout.DropinsDir, filepath.FromSlash(name)))
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to check dropins file").
			WithCause(err)
	}
	return !exists, nil
}
