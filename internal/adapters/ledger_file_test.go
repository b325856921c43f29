package adapters

import (
	"errors"
	"os"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-dropins/internal/types"
)

const testLedgerPath = "/components/default/configuration/org.eclipse.equinox.simpleconfigurator/bundles.info"

type failingReplaceFs struct {
	afero.Fs
	target string
}

func (f failingReplaceFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if name == f.target && flag&os.O_TRUNC != 0 {
		return nil, errors.New("device busy")
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func sampleLedger() types.Ledger {
	return types.NewLedger(map[string][]types.BundleRecord{
		"com.foo": {{SymbolicName: "com.foo", Version: "1.0.0", Path: "../dropins/com.foo.jar", StartLevel: 4}},
	})
}

func TestLedgerFileAdapterLoadMissing(t *testing.T) {
	adapter := NewLedgerFileAdapter(afero.NewMemMapFs())
	records, found, err := adapter.Load(t.Context(), testLedgerPath)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, records)
}

func TestLedgerFileAdapterLoadDropsComments(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testLedgerPath, []byte("#version=1\n\ncom.foo,1.0.0,../dropins/com.foo.jar,4,false\n"), 0644))

	records, found, err := NewLedgerFileAdapter(fs).Load(t.Context(), testLedgerPath)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, records, 1)
	assert.Equal(t, "com.foo", records[0].SymbolicName)
}

func TestLedgerFileAdapterStoreReplacesContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testLedgerPath, []byte("#version=1\nold,1,old.jar,4,false\n"), 0644))
	require.NoError(t, fs.MkdirAll("/tmp", 0755))
	adapter := NewLedgerFileAdapter(fs)
	adapter.TempRoot = "/tmp"

	require.NoError(t, adapter.Store(t.Context(), testLedgerPath, sampleLedger()))

	content, err := afero.ReadFile(fs, testLedgerPath)
	require.NoError(t, err)
	assert.Equal(t, "com.foo,1.0.0,../dropins/com.foo.jar,4,false\n", string(content))

	leftovers, err := afero.ReadDir(fs, "/tmp")
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestLedgerFileAdapterStoreTempFailureKeepsLedger(t *testing.T) {
	base := afero.NewMemMapFs()
	original := []byte("com.foo,1.0.0,../dropins/old.jar,4,false\n")
	require.NoError(t, afero.WriteFile(base, testLedgerPath, original, 0644))

	adapter := NewLedgerFileAdapter(afero.NewReadOnlyFs(base))
	err := adapter.Store(t.Context(), testLedgerPath, sampleLedger())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to create temp directory for ledger")

	content, readErr := afero.ReadFile(base, testLedgerPath)
	require.NoError(t, readErr)
	assert.Equal(t, string(original), string(content))
}

func TestLedgerFileAdapterStoreReplaceFailureKeepsLedger(t *testing.T) {
	base := afero.NewMemMapFs()
	original := []byte("com.foo,1.0.0,../dropins/old.jar,4,false\n")
	require.NoError(t, afero.WriteFile(base, testLedgerPath, original, 0644))

	adapter := NewLedgerFileAdapter(failingReplaceFs{Fs: base, target: testLedgerPath})
	err := adapter.Store(t.Context(), testLedgerPath, sampleLedger())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to replace ledger")

	content, readErr := afero.ReadFile(base, testLedgerPath)
	require.NoError(t, readErr)
	assert.Equal(t, string(original), string(content))
}

func TestLedgerFileAdapterEmptyPath(t *testing.T) {
	adapter := NewLedgerFileAdapter(afero.NewMemMapFs())
	_, _, err := adapter.Load(t.Context(), "")
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	err = adapter.Store(t.Context(), "", sampleLedger())
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
