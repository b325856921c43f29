package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"carbon-dropins/internal/ports"
	"carbon-dropins/internal/types"
)

type ReportFileAdapter struct {
	fs afero.Fs
}

func NewReportFileAdapter(fs afero.Fs) ReportFileAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return ReportFileAdapter{fs: fs}
}

func (a ReportFileAdapter) WriteReport(path string, report types.ReconcileReport) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report path is empty")
	}
	content, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode reconcile report").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := a.fs.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create report directory").
				WithCause(err)
		}
	}
	if err := afero.WriteFile(a.fs, path, content, os.FileMode(0644)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write reconcile report").
			WithCause(err)
	}
	return nil
}

var _ ports.ReportWriterPort = ReportFileAdapter{}
