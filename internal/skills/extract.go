// Package skills derives a candidate's skills from resume text using
// evidence-only strategies and compares them against required-skill lists.
// A skill is never reported unless it occurs verbatim in the source text.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

const maxSectionTokenChars = 48

var (
	skillSectionRe  = regexp.MustCompile(`(?is)\bskills?\b\s*[:\n](.{0,1000}?)(?:\n\s*(?:experience|projects?|education|certifications?)\b|$)`)
	sectionSplitRe  = regexp.MustCompile("[,/|•·\n]+")
	whitespaceRe    = regexp.MustCompile(`\s+`)
	nonSkillMarkers = []string{"target role", "required skill", "required skills", "resume:", "resume text"}
)

// ExtractFromResume returns the skills evidenced by the resume text, sorted
// case-insensitively for stable display. Two passes run: explicit Skills
// section parsing, then fixed alias lexicon matching. Both only report
// surface forms present in the text.
func ExtractFromResume(resumeText string) []string {
	if resumeText == "" {
		return nil
	}

	normalized := " " + strings.ToLower(whitespaceRe.ReplaceAllString(resumeText, " ")) + " "
	var found []string
	seen := make(map[string]struct{})

	add := func(skill string) {
		norm := strings.ToLower(skill)
		if _, ok := seen[norm]; ok {
			return
		}
		seen[norm] = struct{}{}
		found = append(found, skill)
	}

	// Pass 1: explicit skill-section parsing (high precision, evidence-only).
	for _, tok := range sectionTokens(resumeText) {
		if _, ok := seen[strings.ToLower(tok)]; ok {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(tok)) {
			add(tok)
		}
	}

	// Pass 2: alias lexicon, whole-token for short aliases, substring for
	// longer phrases. Every alias with evidence contributes its matched
	// surface form, not the alias itself.
	for _, aliases := range skillAliases {
		for _, alias := range aliases {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			if surface, ok := findAlias(resumeText, alias); ok {
				add(surface)
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		return strings.ToLower(found[i]) < strings.ToLower(found[j])
	})
	return found
}

// sectionTokens locates a Skills section and splits its body on common
// delimiters, keeping plausible skill tokens.
func sectionTokens(resumeText string) []string {
	var lines []string
	for _, ln := range strings.Split(resumeText, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}
	m := skillSectionRe.FindStringSubmatch(strings.Join(lines, "\n"))
	if m == nil {
		return nil
	}

	var tokens []string
	for _, tok := range sectionSplitRe.Split(m[1], -1) {
		s := strings.TrimSpace(whitespaceRe.ReplaceAllString(tok, " "))
		if s == "" || len(s) > maxSectionTokenChars {
			continue
		}
		low := strings.ToLower(s)
		// Skip labels that leak in from pasted templates.
		if strings.HasSuffix(low, ":") && len(low) <= 24 {
			continue
		}
		if containsAny(low, nonSkillMarkers) {
			continue
		}
		tokens = append(tokens, s)
	}
	return tokens
}

// findAlias searches for an alias in the raw text. Aliases of three or fewer
// characters require non-alphanumeric boundaries; longer phrases match as
// substrings. Returns the matched surface form from the text.
func findAlias(raw, alias string) (string, bool) {
	aliasLow := strings.ToLower(alias)
	if len(aliasLow) <= 3 {
		re := regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(` + regexp.QuoteMeta(aliasLow) + `)(?:[^a-z0-9]|$)`)
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], true
		}
		return "", false
	}
	re := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(aliasLow) + `)`)
	if m := re.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
