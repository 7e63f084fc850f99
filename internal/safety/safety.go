// Package safety screens queries and generated answers for prompt
// exfiltration. Detection is pattern based on both sides: queries asking for
// internal instructions are refused before any generation, and answers that
// echo prompt scaffolding are replaced.
package safety

import (
	"regexp"
	"strings"
)

// RefusalMessage is returned for queries probing internal instructions.
const RefusalMessage = "I can't share internal system instructions. I can still help with your career question directly."

// LeakReplacement substitutes an answer that appears to echo prompt text.
const LeakReplacement = "I can't share internal instructions, but I'm happy to help with your career question directly."

var sensitivePatterns = compilePatterns([]string{
	`system prompt`,
	`hidden prompt`,
	`developer prompt`,
	`policy text`,
	`internal instructions`,
	`ignore all prior instructions`,
	`reveal your instructions`,
	`print .*prompt`,
	`show .*rules`,
})

var leakMarkers = []string{
	"full system prompt",
	"policy text",
	"role definition",
	"output style contract",
	"knowledge context rules",
	"important formatting rules",
	"never mention knowledge cutoff",
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// IsPromptExfiltration reports whether a query is probing for internal
// instructions or prompt text.
func IsPromptExfiltration(query string) bool {
	q := strings.ToLower(query)
	for _, re := range sensitivePatterns {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}

// LooksLikePromptLeak reports whether a generated answer appears to contain
// prompt scaffolding.
func LooksLikePromptLeak(text string) bool {
	t := strings.ToLower(text)
	for _, m := range leakMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}
