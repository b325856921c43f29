// Package shared provides common utility functions used across multiple
// packages in the carbon-dropins codebase.
package shared

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorText returns the builder message of an errbuilder error, falling
// back to err.Error() for plain errors.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// NormalizePrefix makes sure a ledger path prefix ends with a slash.
func NormalizePrefix(prefix string) string {
	trimmed := strings.TrimSpace(prefix)
	if trimmed == "" {
		return ""
	}
	trimmed = filepath.ToSlash(trimmed)
	if !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}
	return trimmed
}
