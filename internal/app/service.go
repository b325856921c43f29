package app

import (
	"github.com/spf13/afero"

	"carbon-dropins/internal/adapters"
	"carbon-dropins/internal/ports"
	"carbon-dropins/internal/types"
)

type Service struct {
	Fs         afero.Fs
	Ledger     ports.LedgerStorePort
	Reports    ports.ReportWriterPort
	NewScanner func(layout types.Layout) ports.BundleScannerPort
}

func NewService() Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs wires every adapter to the given filesystem.
func NewServiceWithFs(fs afero.Fs) Service {
	manifests := adapters.NewManifestReaderAdapter(fs)
	return Service{
		Fs:      fs,
		Ledger:  adapters.NewLedgerFileAdapter(fs),
		Reports: adapters.NewReportFileAdapter(fs),
		NewScanner: func(layout types.Layout) ports.BundleScannerPort {
			return adapters.NewBundleScannerAdapter(fs, manifests, layout.BundlePattern, layout.DropinsPrefix, layout.StartLevel)
		},
	}
}
