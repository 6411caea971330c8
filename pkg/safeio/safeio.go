package safeio

import (
	"os"
	"strings"
	"unicode"
)

// SanitizeFilename reduces a candidate filename to the whitelist of
// letters, digits, '.', '_', '-', and space. Every other rune is dropped,
// not replaced, so path separators and traversal sequences cannot survive.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("._- ", r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EnsureDir creates dir (and parents) when it does not already exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o750)
}
