package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"carbon-dropins/internal/policies"
	"carbon-dropins/internal/ports"
	"carbon-dropins/internal/shared"
	"carbon-dropins/internal/types"
)

const (
	headerSymbolicName = "Bundle-SymbolicName"
	headerVersion      = "Bundle-Version"
	headerFragmentHost = "Fragment-Host"
)

// BundleScannerAdapter lists the bundle archives of a dropins directory.
type BundleScannerAdapter struct {
	fs        afero.Fs
	manifests ports.ManifestReaderPort
	policy    policies.DropinsPolicy
	Pattern   string
}

func NewBundleScannerAdapter(fs afero.Fs, manifests ports.ManifestReaderPort, pattern string, prefix string, startLevel int) BundleScannerAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if manifests == nil {
		manifests = NewManifestReaderAdapter(fs)
	}
	if strings.TrimSpace(pattern) == "" {
		pattern = types.DefaultBundlePattern
	}
	return BundleScannerAdapter{
		fs:        fs,
		manifests: manifests,
		policy:    policies.NewDropinsPolicy(prefix, startLevel),
		Pattern:   pattern,
	}
}

func (a BundleScannerAdapter) Scan(ctx context.Context, dir string) ([]types.BundleRecord, []types.ScanIssue, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dropins directory is empty")
	}
	if !doublestar.ValidatePattern(a.Pattern) {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid bundle pattern: " + a.Pattern)
	}
	info, err := a.fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("dir", dir).Msg("dropins directory does not exist")
			return []types.BundleRecord{}, nil, nil
		}
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat dropins directory").
			WithCause(err)
	}
	if !info.IsDir() {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("dropins path is not a directory: " + dir)
	}
	entries, err := afero.ReadDir(a.fs, dir)
	if err != nil {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read dropins directory").
			WithCause(err)
	}

	records := []types.BundleRecord{}
	var issues []types.ScanIssue
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ok, _ := doublestar.Match(a.Pattern, name); !ok {
			continue
		}
		record, err := a.readCandidate(filepath.Join(dir, name), name)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("skipping dropins bundle")
			issues = append(issues, types.ScanIssue{File: name, Reason: shared.ErrorText(err)})
			continue
		}
		records = append(records, record)
	}
	return records, issues, nil
}

func (a BundleScannerAdapter) readCandidate(path string, name string) (types.BundleRecord, error) {
	headers, err := a.manifests.ReadManifest(path)
	if err != nil {
		return types.BundleRecord{}, err
	}
	symbolicName, _ := manifestHeader(headers, headerSymbolicName)
	if idx := strings.Index(symbolicName, ";"); idx >= 0 {
		symbolicName = symbolicName[:idx]
	}
	symbolicName = strings.TrimSpace(symbolicName)
	version, _ := manifestHeader(headers, headerVersion)
	version = strings.TrimSpace(version)
	if symbolicName == "" || version == "" {
		return types.BundleRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle manifest is missing Bundle-SymbolicName or Bundle-Version")
	}
	_, fragment := manifestHeader(headers, headerFragmentHost)
	return types.BundleRecord{
		SymbolicName: symbolicName,
		Version:      version,
		Path:         a.policy.CandidatePath(name),
		StartLevel:   a.policy.StartLevel,
		Fragment:     fragment,
		Origin:       types.BundleOriginDropins,
	}, nil
}

var _ ports.BundleScannerPort = BundleScannerAdapter{}
