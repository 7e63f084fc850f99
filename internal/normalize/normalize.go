// Package normalize repairs generated answer text with an ordered pipeline of
// deterministic transforms. Each stage is pure, safe on empty input, and never
// raises on malformed or partial markdown; later stages assume earlier ones
// already ran, so the order is load-bearing.
package normalize

import (
	"regexp"
	"strings"
)

var (
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	paragraphSplit  = regexp.MustCompile(`\n\s*\n`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
	shellPromptRe   = regexp.MustCompile(`^\s*(\$|PS>|>>)\s*`)
	fencedBlockRe   = regexp.MustCompile("```[\\s\\S]*?```")
	installCmdRe    = regexp.MustCompile(`(?i)\b(pip install|npm install|apt-get|brew install|curl |wget |docker |kubectl )\b`)
	splitBoldRe     = regexp.MustCompile(`\*\*([^\n*]{1,80})\n([^\n*]{1,80})\*\*`)
	doubledHashRe   = regexp.MustCompile(`#+\s*#\s*`)
	inlineHeadingRe = regexp.MustCompile(`\s+(#{1,3}\s+)`)
	inlineBulletRe  = regexp.MustCompile(`\s+(-\s+)`)
	inlineNumberRe  = regexp.MustCompile(`\s+(\d+\.\s+)`)
	dashRunOnRe     = regexp.MustCompile(`\s[-\x{2013}\x{2014}]\s([A-Z0-9])`)
)

// ForChat runs the full repair pipeline on a chat answer and enforces the
// mode's word cap. maxWords <= 0 disables truncation.
func ForChat(text string, maxWords int) string {
	if text == "" {
		return text
	}

	cleaned := ASCIIPunct(text)
	cleaned = splitBoldRe.ReplaceAllString(cleaned, "**$1 $2**")
	cleaned = doubledHashRe.ReplaceAllString(cleaned, "## ")
	cleaned = StripCodeFences(cleaned)
	cleaned = stripShellPrompts(cleaned)
	cleaned = DedupeParagraphs(cleaned)
	cleaned = Reflow(cleaned)
	cleaned = PromoteStructure(cleaned)
	cleaned = BalanceMarkdown(cleaned)
	cleaned = CleanTail(cleaned)
	cleaned = StripDisclaimers(cleaned)
	cleaned = TruncateWords(cleaned, maxWords)
	return cleaned
}

// ASCIIPunct replaces smart quotes, long dashes, and non-breaking spaces with
// their ASCII equivalents. Upstream providers occasionally emit them and they
// render as mojibake in some clients.
func ASCIIPunct(text string) string {
	if text == "" {
		return text
	}
	replacer := strings.NewReplacer(
		"‘", "'",
		"’", "'",
		"“", `"`,
		"”", `"`,
		"–", "-",
		"—", "-",
		" ", " ",
	)
	return replacer.Replace(text)
}

// StripCodeFences unwraps fenced blocks to plain lines, drops obvious
// install-command dumps, and strips shell prompt prefixes from what remains.
func StripCodeFences(text string) string {
	if text == "" {
		return text
	}

	cleaned := strings.NewReplacer("```bash", "```", "```sh", "```", "```shell", "```").Replace(text)
	cleaned = fencedBlockRe.ReplaceAllStringFunc(cleaned, func(block string) string {
		inner := strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(block), "```", ""))
		var kept []string
		for _, ln := range strings.Split(inner, "\n") {
			ln = strings.TrimRight(shellPromptRe.ReplaceAllString(ln, ""), " \t")
			if installCmdRe.MatchString(ln) {
				continue
			}
			if strings.TrimSpace(ln) != "" {
				kept = append(kept, ln)
			}
		}
		return strings.Join(kept, "\n")
	})
	return strings.TrimSpace(blankRunRe.ReplaceAllString(cleaned, "\n\n"))
}

// stripShellPrompts removes `$`, `PS>`, `>>` prefixes outside fenced blocks
// while preserving blank lines and markdown headings.
func stripShellPrompts(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		out = append(out, shellPromptRe.ReplaceAllString(line, ""))
	}
	return strings.Join(out, "\n")
}

// DedupeParagraphs drops repeated paragraphs, comparing by a lowercase
// alphanumeric key. The first occurrence wins and order is preserved.
func DedupeParagraphs(text string) string {
	if text == "" {
		return text
	}

	seen := make(map[string]struct{})
	var unique []string
	for _, part := range paragraphSplit.Split(text, -1) {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		key := nonAlnumRe.ReplaceAllString(strings.ToLower(p), "")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}
	return strings.TrimSpace(strings.Join(unique, "\n\n"))
}

// Reflow forces headings, bullets, and numbered items onto their own lines
// when the generator collapses sections into a single paragraph.
func Reflow(text string) string {
	if text == "" {
		return text
	}
	cleaned := inlineHeadingRe.ReplaceAllString(text, "\n\n$1")
	cleaned = inlineBulletRe.ReplaceAllString(cleaned, "\n$1")
	cleaned = inlineNumberRe.ReplaceAllString(cleaned, "\n$1")
	// Run-on dash-separated action fragments become bullets.
	cleaned = dashRunOnRe.ReplaceAllString(cleaned, "\n- $1")
	return strings.TrimSpace(blankRunRe.ReplaceAllString(cleaned, "\n\n"))
}
