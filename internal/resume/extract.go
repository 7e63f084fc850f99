package resume

import (
	"strings"
	"unicode/utf8"
)

// ExtractText converts an uploaded resume file into plain text. Plain-text
// formats are decoded directly; binary formats that need a dedicated parser
// return an UnsupportedFormatError so the caller can surface an actionable
// message.
func ExtractText(filename string, content []byte) (string, error) {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".md"):
		return strings.TrimSpace(sanitizeUTF8(content)), nil
	default:
		return "", &UnsupportedFormatError{Filename: filename}
	}
}

// sanitizeUTF8 drops invalid byte sequences instead of failing the upload.
func sanitizeUTF8(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	var b strings.Builder
	b.Grow(len(content))
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		content = content[size:]
	}
	return b.String()
}
