// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// BundleManifest renders a minimal jar manifest with the given headers in
// sorted order.
func BundleManifest(headers map[string]string) []byte {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	buf.WriteString("Manifest-Version: 1.0\r\n")
	for _, key := range keys {
		buf.WriteString(key + ": " + headers[key] + "\r\n")
	}
	buf.WriteString("\r\n")
	return buf.Bytes()
}

// WriteJar writes a zip archive containing the given entries.
func WriteJar(t *testing.T, fs afero.Fs, path string, entries map[string][]byte) {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, buf.Bytes(), 0644))
}

// WriteBundle writes a jar whose manifest declares the given OSGi headers.
func WriteBundle(t *testing.T, fs afero.Fs, path string, headers map[string]string) {
	t.Helper()
	WriteJar(t, fs, path, map[string][]byte{
		"META-INF/MANIFEST.MF": BundleManifest(headers),
	})
}

// BundleHeaders returns the identity headers of a bundle or fragment.
func BundleHeaders(symbolicName string, version string, fragmentHost string) map[string]string {
	headers := map[string]string{
		"Bundle-ManifestVersion": "2",
		"Bundle-SymbolicName":    symbolicName,
		"Bundle-Version":         version,
	}
	if fragmentHost != "" {
		headers["Fragment-Host"] = fragmentHost
	}
	return headers
}
