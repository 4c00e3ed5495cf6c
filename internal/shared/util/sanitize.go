package util

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName reduces an uploaded file name to its base name with path
// separators and control characters removed. It returns "" when nothing usable remains.
func SanitizeFileName(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	s = filepath.Base(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "." || s == "/" || s == ".." {
		return ""
	}
	return s
}
