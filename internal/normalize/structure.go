package normalize

import (
	"regexp"
	"strings"
)

// Line families the promotion pass reshapes. These are tuned to the answer
// style the knowledge base produces, not to markdown in general.
var bulletStarts = []string{
	"Entry-Level",
	"Mid-Level",
	"Senior-Level",
	"Your Case",
	"Example:",
	"Focus on",
	"Niche Roles",
	"Target ",
	"For startups",
	"Highest concentration",
	"Strong demand",
	"GCCs",
	"Prioritize cities",
}

var actionVerbs = []string{
	"Learn ",
	"Build ",
	"Add ",
	"Create ",
	"Use ",
	"Focus ",
	"Take ",
	"Practice ",
	"Apply ",
	"Document ",
	"Master ",
	"Strengthen ",
	"Deepen ",
	"Write ",
	"Contribute ",
	"Set up ",
	"Include ",
	"Prioritize ",
	"Target ",
	"Deploy ",
	"Optimize ",
	"Prepare ",
}

var (
	labelValueRe  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9/& +\-]{1,42}):\s*(.+)$`)
	labelPrefixRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9/& +\-]{1,42}:\s*`)
	cityRe        = regexp.MustCompile(`\b(Bangalore|Mumbai|Pune|Hyderabad|Delhi|NCR|Chennai|Kochi|Coimbatore)\b`)
)

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func isListMarker(s string) bool {
	return hasAnyPrefix(s, "- ", "* ", "1. ", "2. ", "3. ", "4. ")
}

// PromoteStructure rewrites flat prose lines into headings and bullets. The
// first pass promotes labels, fact lines, and city lines; the second pass
// spaces headings and bullets whole runs of plain lines that sit under a
// subsection or start with an action verb.
func PromoteStructure(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i, raw := range lines {
		s := strings.TrimSpace(raw)
		if s == "" {
			out = append(out, "")
			continue
		}

		// Section labels become subheadings.
		if strings.HasSuffix(s, ":") && len(s) <= 80 &&
			!hasAnyPrefix(s, "#", "- ", "* ", "1. ", "2. ", "3. ") {
			out = append(out, "### "+strings.TrimSpace(strings.TrimSuffix(s, ":")))
			continue
		}

		// Salary and city fact lines read better as bullets.
		if hasAnyPrefix(s, bulletStarts...) && !isListMarker(s) {
			out = append(out, "- "+s)
			continue
		}

		// Label/value lines (Why:, Salary band:, Action:) become bold bullets.
		if m := labelValueRe.FindStringSubmatch(s); m != nil &&
			!hasAnyPrefix(s, "#", "- ", "* ", "1. ", "2. ", "3. ") {
			out = append(out, "- **"+strings.TrimSpace(m[1])+":** "+strings.TrimSpace(m[2]))
			continue
		}

		// Short city lines become subheadings.
		if !hasAnyPrefix(s, "#", "- ", "* ", "1. ", "2. ", "3. ") &&
			cityRe.MatchString(s) && len(s) <= 90 && !strings.Contains(s, ":") {
			out = append(out, "### "+s)
			continue
		}

		// Short standalone labels followed by bullet material become subheadings.
		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}
		if !hasAnyPrefix(s, "#", "- ", "* ", "1. ", "2. ", "3. ") &&
			len(s) <= 70 && !strings.Contains(s, ".") && !strings.Contains(s, ":") &&
			next != "" && (hasAnyPrefix(next, bulletStarts...) || strings.HasPrefix(next, "- ")) {
			out = append(out, "### "+s)
			continue
		}

		out = append(out, s)
	}

	// Second pass: spacing around headings, plain lines under subsections
	// become bullets.
	spaced := make([]string, 0, len(out))
	bulletContext := false
	for idx, line := range out {
		s := strings.TrimSpace(line)
		if s == "" {
			if len(spaced) > 0 && spaced[len(spaced)-1] != "" {
				spaced = append(spaced, "")
			}
			continue
		}

		isHeading := strings.HasPrefix(s, "## ") || strings.HasPrefix(s, "### ")
		isListItem := isListMarker(s)

		if strings.HasPrefix(s, "## ") {
			bulletContext = false
		} else if strings.HasPrefix(s, "### ") {
			bulletContext = true
		}

		if isHeading && len(spaced) > 0 && spaced[len(spaced)-1] != "" {
			spaced = append(spaced, "")
		}

		prevNonEmpty := ""
		for j := len(spaced) - 1; j >= 0; j-- {
			if t := strings.TrimSpace(spaced[j]); t != "" {
				prevNonEmpty = t
				break
			}
		}

		if bulletContext && !isHeading && !isListItem {
			s = "- " + s
			isListItem = true
		}

		if !isHeading && !isListItem && len(s) <= 220 &&
			(hasAnyPrefix(s, actionVerbs...) || strings.HasPrefix(prevNonEmpty, "## ") || strings.HasPrefix(prevNonEmpty, "### ")) &&
			!labelPrefixRe.MatchString(s) {
			s = "- " + s
			isListItem = true
		}

		spaced = append(spaced, s)

		if isHeading && idx+1 < len(out) && strings.TrimSpace(out[idx+1]) != "" {
			spaced = append(spaced, "")
		}
	}

	cleaned := strings.Join(spaced, "\n")
	return strings.TrimSpace(blankRunRe.ReplaceAllString(cleaned, "\n\n"))
}
