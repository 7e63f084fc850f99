package normalize

import (
	"regexp"
	"strings"
)

var (
	inlineH2Re     = regexp.MustCompile(`\s+(##\s+)`)
	inlineDashRe   = regexp.MustCompile(`\s+-\s+`)
)

// ForResume repairs generated resume markdown. Fences are dropped outright
// since resumes never carry code, then headings and bullets are forced onto
// their own lines.
func ForResume(text string) string {
	if text == "" {
		return text
	}

	cleaned := strings.ReplaceAll(text, "```", "")
	cleaned = CleanTail(cleaned)
	cleaned = BalanceMarkdown(cleaned)

	cleaned = inlineH2Re.ReplaceAllString(cleaned, "\n\n$1")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	cleaned = inlineDashRe.ReplaceAllString(cleaned, "\n- ")
	return strings.TrimSpace(blankRunRe.ReplaceAllString(cleaned, "\n\n"))
}
