package adapters

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"carbon-dropins/internal/ports"
	"carbon-dropins/internal/types"
)

// LedgerFileAdapter reads bundles.info and replaces it through a temp copy.
type LedgerFileAdapter struct {
	fs afero.Fs
	// TempRoot is where the temp directory is created; empty means the
	// system temp directory.
	TempRoot string
}

func NewLedgerFileAdapter(fs afero.Fs) LedgerFileAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return LedgerFileAdapter{fs: fs}
}

func (a LedgerFileAdapter) Load(ctx context.Context, path string) ([]types.BundleRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(path) == "" {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("ledger path is empty")
	}
	content, err := afero.ReadFile(a.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read ledger").
			WithCause(err)
	}
	records, err := DecodeLedger(content)
	if err != nil {
		return nil, true, err
	}
	return records, true, nil
}

func (a LedgerFileAdapter) Store(ctx context.Context, path string, ledger types.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("ledger path is empty")
	}
	tempDir, err := afero.TempDir(a.fs, a.TempRoot, "bundles-info-")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temp directory for ledger").
			WithCause(err)
	}
	defer func() {
		if err := a.fs.RemoveAll(tempDir); err != nil {
			log.Debug().Err(err).Str("dir", tempDir).Msg("failed to remove ledger temp directory")
		}
	}()

	tempPath := filepath.Join(tempDir, types.LedgerFileName)
	if err := afero.WriteFile(a.fs, tempPath, EncodeLedger(ledger), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write temp ledger").
			WithCause(err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.replace(tempPath, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace ledger").
			WithCause(err)
	}
	log.Debug().Str("path", path).Int("records", ledger.Len()).Msg("ledger written")
	return nil
}

// replace copies src over dst. A rename is avoided because the temp
// directory may live on another filesystem.
func (a LedgerFileAdapter) replace(src string, dst string) error {
	in, err := a.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := a.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

var _ ports.LedgerStorePort = LedgerFileAdapter{}
