package skills

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nareshchaudhary/career-agent/internal/types"
)

// ComparePayload is the parsed form of the structured skill-compare template.
type ComparePayload struct {
	Resume   string
	Role     string
	Required []string
}

var (
	blockRes = map[string]*regexp.Regexp{
		"RESUME_TEXT":     compareBlockRe("RESUME_TEXT"),
		"TARGET_ROLE":     compareBlockRe("TARGET_ROLE"),
		"REQUIRED_SKILLS": compareBlockRe("REQUIRED_SKILLS"),
	}
	requiredSplitRe = regexp.MustCompile(`[,\n]+`)
)

func compareBlockRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?si)<<<` + name + `>>>\s*(.*?)\s*(?:<<<|$)`)
}

// ParseComparePayload detects the delimited skill-compare template inside a
// user message. Each block runs until the next <<<...>>> marker or end of
// text. Returns nil when no block is present.
func ParseComparePayload(text string) *ComparePayload {
	if text == "" {
		return nil
	}

	extract := func(name string) string {
		if m := blockRes[name].FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}

	resume := extract("RESUME_TEXT")
	role := extract("TARGET_ROLE")
	rawSkills := extract("REQUIRED_SKILLS")
	if resume == "" && role == "" && rawSkills == "" {
		return nil
	}

	var required []string
	for _, tok := range requiredSplitRe.Split(rawSkills, -1) {
		if s := strings.TrimSpace(whitespaceRe.ReplaceAllString(tok, " ")); s != "" {
			required = append(required, s)
		}
	}
	return &ComparePayload{Resume: resume, Role: role, Required: required}
}

// Ready reports whether the payload carries enough data for a comparison.
func (p *ComparePayload) Ready() bool {
	return p != nil && p.Resume != "" && len(p.Required) > 0
}

// BuildComparison compares required skills against evidence-backed extraction.
// A required skill counts as present when it equals an extracted skill
// case-insensitively or occurs as a literal substring of the resume text;
// otherwise it is missing and gets a generic recommendation pair. Nothing is
// ever inferred beyond textual presence.
func BuildComparison(resumeText string, required []string) *types.SkillComparison {
	extracted := ExtractFromResume(resumeText)

	extractedSet := make(map[string]struct{}, len(extracted))
	for _, s := range extracted {
		extractedSet[strings.ToLower(s)] = struct{}{}
	}

	paddedResume := " " + strings.ToLower(resumeText) + " "
	var missing []string
	for _, req := range required {
		norm := strings.ToLower(strings.TrimSpace(req))
		if norm == "" {
			continue
		}
		if _, ok := extractedSet[norm]; ok {
			continue
		}
		if strings.Contains(paddedResume, norm) {
			continue
		}
		missing = append(missing, req)
	}

	recommendations := make(map[string][]string, len(missing))
	for _, skill := range missing {
		key := strings.TrimSpace(skill)
		if key == "" {
			continue
		}
		q := url.QueryEscape(key)
		recommendations[key] = []string{
			"https://roadmap.sh/search?q=" + q,
			"https://www.coursera.org/search?query=" + q,
		}
	}

	return &types.SkillComparison{
		ExtractedSkills: extracted,
		MissingSkills:   missing,
		Recommendations: recommendations,
	}
}
