// Package resume manages the per-session resume profile: upload, candidate
// name detection, and plain-text extraction from supported file formats.
package resume

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Resume text is capped so one upload cannot dominate prompt budgets.
const maxResumeChars = 22000

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nameLabelRe  = regexp.MustCompile(`(?i)\bname\b\s*[:\-]\s*([A-Za-z][A-Za-z .'-]{1,60})`)
	nameWordRe   = regexp.MustCompile(`[A-Za-z][A-Za-z'-]*`)
	stemSepRe    = regexp.MustCompile(`[_\-]+`)
	digitRe      = regexp.MustCompile(`\d`)
)

// Header tokens that disqualify a line from being a candidate name.
var blockedNameTokens = map[string]struct{}{
	"resume":     {},
	"curriculum": {},
	"vitae":      {},
	"email":      {},
	"phone":      {},
	"linkedin":   {},
	"github":     {},
	"profile":    {},
	"summary":    {},
	"objective":  {},
}

// Profile holds the uploaded resume for one session. Raw preserves line
// breaks for evidence-only skill extraction; Clean is whitespace-collapsed
// for prompt injection.
type Profile struct {
	Raw      string
	Clean    string
	Name     string
	Uploaded bool
}

// SetResult reports the outcome of a profile upload.
type SetResult struct {
	Uploaded bool   `json:"uploaded"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// Set installs resume text into the profile, capping it and deriving the
// candidate name. Empty extractions leave the profile untouched.
func (p *Profile) Set(text, filename string) SetResult {
	raw := strings.TrimSpace(text)
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	if raw == "" || clean == "" {
		return SetResult{Message: "Resume text could not be extracted."}
	}

	p.Raw = capChars(raw, maxResumeChars)
	p.Clean = capChars(clean, maxResumeChars)
	p.Name = ExtractCandidateName(text, filename)
	p.Uploaded = true
	return SetResult{Uploaded: true, Name: p.Name, Message: "Hi " + p.Name}
}

// Clear drops the uploaded resume.
func (p *Profile) Clear() {
	*p = Profile{}
}

func capChars(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ExtractCandidateName finds the candidate's name using, in order: an
// explicit Name label in the top lines, a short all-letters line near the
// top, the filename stem, and finally a fixed placeholder.
func ExtractCandidateName(resumeText, filename string) string {
	var lines []string
	for _, ln := range strings.Split(strings.TrimSpace(resumeText), "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
		if len(lines) == 20 {
			break
		}
	}

	for _, line := range lines {
		if m := nameLabelRe.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(whitespaceRe.ReplaceAllString(m[1], " "))
			if len(name) >= 2 && len(name) <= 60 {
				return name
			}
		}
	}

	top := lines
	if len(top) > 8 {
		top = top[:8]
	}
	for _, line := range top {
		if strings.Contains(line, "@") || digitRe.MatchString(line) {
			continue
		}
		words := nameWordRe.FindAllString(line, -1)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		blocked := false
		for _, w := range words {
			if _, ok := blockedNameTokens[strings.ToLower(w)]; ok {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		candidate := strings.Join(words, " ")
		if len(candidate) >= 3 && len(candidate) <= 50 {
			return candidate
		}
	}

	if filename != "" {
		stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		stem = stemSepRe.ReplaceAllString(stem, " ")
		stem = strings.TrimSpace(whitespaceRe.ReplaceAllString(stem, " "))
		if stem != "" {
			return titleCase(stem)
		}
	}

	return "Candidate"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
