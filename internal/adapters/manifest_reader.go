package adapters

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"carbon-dropins/internal/ports"
)

const manifestEntry = "META-INF/MANIFEST.MF"

// ManifestReaderAdapter reads the main section of a jar manifest.
type ManifestReaderAdapter struct {
	fs afero.Fs
}

func NewManifestReaderAdapter(fs afero.Fs) ManifestReaderAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return ManifestReaderAdapter{fs: fs}
}

func (a ManifestReaderAdapter) ReadManifest(path string) (map[string]string, error) {
	file, err := a.fs.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open bundle archive").
			WithCause(err)
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat bundle archive").
			WithCause(err)
	}
	archive, err := zip.NewReader(file, info.Size())
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle is not a valid archive").
			WithCause(err)
	}
	for _, entry := range archive.File {
		if !strings.EqualFold(entry.Name, manifestEntry) {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to open bundle manifest").
				WithCause(err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read bundle manifest").
				WithCause(err)
		}
		headers := ParseManifest(content)
		if len(headers) == 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bundle manifest has no main attributes")
		}
		return headers, nil
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("bundle manifest not found")
}

// ParseManifest returns the main-section headers of a manifest. Lines
// starting with a single space continue the previous header value.
func ParseManifest(content []byte) map[string]string {
	headers := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var key string
	var value strings.Builder
	flush := func() {
		if key != "" {
			headers[key] = strings.TrimSpace(value.String())
		}
		key = ""
		value.Reset()
	}
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			if key != "" {
				value.WriteString(line[1:])
			}
			continue
		}
		flush()
		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(name)
		value.WriteString(strings.TrimPrefix(rest, " "))
	}
	flush()
	return headers
}

// manifestHeader looks up a header case-insensitively.
func manifestHeader(headers map[string]string, name string) (string, bool) {
	if value, ok := headers[name]; ok {
		return value, true
	}
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}

var _ ports.ManifestReaderPort = ManifestReaderAdapter{}
