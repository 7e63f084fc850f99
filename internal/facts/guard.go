package facts

import (
	"regexp"
	"strings"
)

// GuardFallback replaces an answer emptied by the grounding guard.
const GuardFallback = "Salary ranges vary by city, company tier, and skills. Tell me your city and years of experience for a grounded estimate."

var (
	currencyKeywordRe = regexp.MustCompile(`(?i)\b(lpa|ctc|package|inr|rs\.?)\b`)
	digitRe           = regexp.MustCompile(`\d`)
	outputRangeRe     = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:-|to)\s*(\d{1,2})\s*LPA\b`)
	outputPercentRe   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:%|percent\b)`)
)

// ApplyGuard deletes any output line carrying a numeric financial claim that
// is not in the allow-list. With no grounded salary ranges at all, every line
// pairing a currency keyword with a digit is deleted. Runs strictly after
// structural repair; an emptied answer is replaced by GuardFallback.
func ApplyGuard(answer string, allowed Allowed) string {
	if answer == "" {
		return answer
	}

	var kept []string
	for _, line := range strings.Split(answer, "\n") {
		s := strings.TrimSpace(line)
		if s == "" {
			kept = append(kept, line)
			continue
		}
		if !allowed.HasSalaryRanges() && currencyKeywordRe.MatchString(s) && digitRe.MatchString(s) {
			continue
		}
		if m := outputRangeRe.FindStringSubmatch(s); m != nil {
			if _, ok := allowed.Union[m[1]+"-"+m[2]+" LPA"]; !ok {
				continue
			}
		}
		if m := outputPercentRe.FindStringSubmatch(s); m != nil {
			if _, ok := allowed.Union[m[1]+"%"]; !ok {
				continue
			}
		}
		kept = append(kept, line)
	}

	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if cleaned == "" {
		return GuardFallback
	}
	return cleaned
}
