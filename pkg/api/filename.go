package api

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const maxFilenameLength = 255

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// SanitizeFilename makes name safe to use as a file name: it is normalised to
// NFC, characters that are reserved on common filesystems become '_', and the
// result is truncated to 255 bytes without cutting the extension or a rune.
func SanitizeFilename(name string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(norm.NFC.String(name), "_")
	if len(sanitized) <= maxFilenameLength {
		return sanitized
	}

	ext := filepath.Ext(sanitized)
	if len(ext) >= maxFilenameLength {
		ext = ""
	}
	stem := strings.TrimSuffix(sanitized, ext)
	limit := maxFilenameLength - len(ext)
	for limit > 0 && !utf8.RuneStart(stem[limit]) {
		limit--
	}
	return stem[:limit] + ext
}
