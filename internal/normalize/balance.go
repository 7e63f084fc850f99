package normalize

import (
	"regexp"
	"strings"
)

var (
	openBoldTailRe   = regexp.MustCompile(`\*\*([^*\n]{1,120})$`)
	boldPunctOnlyRe  = regexp.MustCompile(`\*\*([.,;:])\*\*`)
	trailingBoldRe   = regexp.MustCompile(`([.!?])\*\*$`)
	sentenceEndRe    = regexp.MustCompile(`[.!?)]$`)
	disclaimerRes    = compileDisclaimers()
	disclaimerSubst  = "I can help with practical, current-focused guidance using the provided India IT knowledge base."
	tailDecorRunes   = map[rune]bool{'*': true, '_': true, '`': true, '|': true}
)

func compileDisclaimers() []*regexp.Regexp {
	patterns := []string{
		`knowledge cutoff`,
		`my knowledge cutoff`,
		`i cannot browse`,
		`i can'?t browse`,
		`i do not have real[- ]time`,
		`as an ai language model`,
		`i do not have access to current`,
		`i don't have access to current`,
	}
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}

// CleanTail removes trailing markdown decoration runes and a dangling
// horizontal rule left by an interrupted generation.
func CleanTail(text string) string {
	cleaned := strings.TrimRight(text, " \t\n")
	for cleaned != "" && tailDecorRunes[rune(cleaned[len(cleaned)-1])] {
		cleaned = strings.TrimRight(cleaned[:len(cleaned)-1], " \t\n")
	}
	if strings.HasSuffix(cleaned, "---") {
		cleaned = strings.TrimRight(strings.TrimSuffix(cleaned, "---"), " \t\n")
	}
	return cleaned
}

// BalanceMarkdown closes unmatched fences, backticks, brackets, and bold runs,
// then drops a short unfinished heading or bullet left as the final line.
// Applying it twice yields the same result as once.
func BalanceMarkdown(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return cleaned
	}

	if strings.Count(cleaned, "```")%2 == 1 {
		cleaned += "\n```"
	}

	cleaned = openBoldTailRe.ReplaceAllString(cleaned, "**$1**")
	cleaned = boldPunctOnlyRe.ReplaceAllString(cleaned, "$1")
	cleaned = trailingBoldRe.ReplaceAllString(cleaned, "$1")

	if strings.Count(cleaned, "`")%2 == 1 {
		cleaned += "`"
	}
	if strings.Count(cleaned, "[") > strings.Count(cleaned, "]") {
		cleaned += "]"
	}
	if strings.Count(cleaned, "(") > strings.Count(cleaned, ")") {
		cleaned += ")"
	}

	// Dropping the sole line would erase the whole answer, so the dangling
	// heading repair only applies when other content remains.
	lines := strings.Split(cleaned, "\n")
	if len(lines) > 1 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if len(last) < 40 &&
			(hasAnyPrefix(last, "#", "- ", "* ", "> ") || strings.HasSuffix(last, ":")) &&
			!sentenceEndRe.MatchString(last) {
			cleaned = strings.TrimSpace(strings.Join(lines[:len(lines)-1], "\n"))
		}
	}

	return cleaned
}

// StripDisclaimers removes lines claiming a knowledge cutoff or inability to
// browse. An answer emptied by the strip is replaced with a fixed fallback.
func StripDisclaimers(text string) string {
	if text == "" {
		return text
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		blocked := false
		for _, re := range disclaimerRes {
			if re.MatchString(lower) {
				blocked = true
				break
			}
		}
		if !blocked {
			kept = append(kept, line)
		}
	}

	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if cleaned == "" {
		return disclaimerSubst
	}
	return cleaned
}

// TruncateWords enforces a word cap, keeping whole paragraphs. A final
// partial paragraph is kept as a truncated prefix ending in an ellipsis when
// more than 20 words of budget remain for it, and dropped otherwise.
func TruncateWords(text string, maxWords int) string {
	if text == "" || maxWords <= 0 {
		return text
	}
	if len(strings.Fields(text)) <= maxWords {
		return text
	}

	var b strings.Builder
	used := 0
	for i, part := range paragraphSplit.Split(text, -1) {
		words := strings.Fields(part)
		if len(words) == 0 {
			continue
		}
		if used+len(words) <= maxWords {
			if i > 0 && b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(part)
			used += len(words)
			continue
		}
		remaining := maxWords - used
		if remaining > 20 {
			tail := strings.TrimRight(strings.Join(words[:remaining], " "), " ,;:-")
			if tail != "" {
				if b.Len() > 0 {
					b.WriteString("\n\n")
				}
				b.WriteString(tail + " ...")
			}
		}
		break
	}
	return strings.TrimSpace(b.String())
}
