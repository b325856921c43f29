package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"carbon-dropins/internal/shared"
	"carbon-dropins/internal/types"
)

// ResolveLayout fills in the Carbon defaults:
// <components>/dropins and
// <components>/<profile>/configuration/org.eclipse.equinox.simpleconfigurator/bundles.info.
func ResolveLayout(req LayoutRequest) (types.Layout, error) {
	components := strings.TrimSpace(req.ComponentsDir)
	profile := strings.TrimSpace(req.Profile)
	if profile == "" {
		profile = types.DefaultProfile
	}
	dropins := strings.TrimSpace(req.DropinsDir)
	if dropins == "" && components != "" {
		dropins = filepath.Join(components, "dropins")
	}
	ledger := strings.TrimSpace(req.LedgerPath)
	if ledger == "" && components != "" {
		ledger = filepath.Join(components, profile, "configuration",
			"org.eclipse.equinox.simpleconfigurator", types.LedgerFileName)
	}
	if dropins == "" || ledger == "" {
		return types.Layout{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("components dir or both dropins dir and ledger path are required")
	}
	if req.StartLevel < 0 {
		return types.Layout{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("start level must not be negative")
	}
	layout := types.Layout{
		DropinsDir:    dropins,
		LedgerPath:    ledger,
		BundlePattern: strings.TrimSpace(req.BundlePattern),
		DropinsPrefix: shared.NormalizePrefix(req.DropinsPrefix),
		StartLevel:    req.StartLevel,
	}
	if layout.BundlePattern == "" {
		layout.BundlePattern = types.DefaultBundlePattern
	}
	if layout.DropinsPrefix == "" {
		layout.DropinsPrefix = types.DefaultDropinsPrefix
	}
	if layout.StartLevel == 0 {
		layout.StartLevel = types.DefaultStartLevel
	}
	return layout, nil
}
